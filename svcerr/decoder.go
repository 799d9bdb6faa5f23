package svcerr

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Decoder turns raw error-body bytes into a target shape. Response headers
// are handed along for content-type or charset hints; implementations are
// free to ignore them.
//
// A Decoder may fail; ParseErrorBody recovers from that locally, so a failing
// Decode never escapes this package.
type Decoder interface {
	Decode(data []byte, v any, headers http.Header) error
}

// JSONDecoder is the default Decoder: strict encoding/json.
type JSONDecoder struct{}

var _ Decoder = JSONDecoder{}

// Decode decodes with UseNumber so numeric payload fields survive verbose
// re-rendering without float mangling. Empty input fails (io.EOF), which is
// exactly what the fallback path wants.
func (JSONDecoder) Decode(data []byte, v any, _ http.Header) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
