package utils_test

import (
	"strings"
	"testing"

	"github.com/tmarkko/svcfail/utils"
)

func TestEncodeJSONBody_Basic(t *testing.T) {
	buf, err := utils.EncodeJSONBody(map[string]string{"name": "x"})
	if err != nil {
		t.Fatalf("EncodeJSONBody: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if got != `{"name":"x"}` {
		t.Fatalf("encoded = %q", got)
	}
}

func TestEncodeJSONBody_NoHTMLEscaping(t *testing.T) {
	buf, err := utils.EncodeJSONBody(map[string]string{"q": "a<b>&c"})
	if err != nil {
		t.Fatalf("EncodeJSONBody: %v", err)
	}
	got := buf.String()
	if strings.Contains(got, `\u003c`) || strings.Contains(got, `\u0026`) {
		t.Fatalf("HTML escaping leaked into body: %q", got)
	}
	if !strings.Contains(got, "a<b>&c") {
		t.Fatalf("literal characters lost: %q", got)
	}
}

func TestEncodeJSONBody_Unencodable(t *testing.T) {
	if _, err := utils.EncodeJSONBody(make(chan int)); err == nil {
		t.Fatalf("expected error for unencodable value")
	}
}
