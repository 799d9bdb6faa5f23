package svcerr

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// truncationMarker is how truncated values are shown.
	truncationMarker = "[...]"

	// maxBrevityLength caps a single header line in brief mode.
	maxBrevityLength = 50

	// diagnosticHeaderPrefix is the only response header family shown in
	// brief mode.
	diagnosticHeaderPrefix = "x-throwsite"

	prettyPrintWarning = "[Warning: Unable to parse error message body]"
	brevityAdvisory    = "[Some information was truncated for brevity, enable debug logging for more details]"

	// maxBytePreview is how many bytes of a raw byte payload a brief
	// capture shows.
	maxBytePreview = 8
)

// renderMessage assembles the human-readable report. Brief mode is the safe
// default: header lines are truncated, the request body is hidden entirely
// (it may carry sensitive payload data even after header redaction), response
// headers are suppressed except diagnostics, and the payload is replaced by
// an advisory. Verbose mode shows everything including the raw payload.
//
// Rendering never fails; a pretty-print failure degrades to a fixed warning
// line.
func renderMessage(e *ServiceError, verbose bool) string {
	var sb strings.Builder

	if p := e.payload; p != nil && p.Error != nil && p.Error.Code != "" && p.Error.Message != "" {
		sb.WriteString("Error code: " + p.Error.Code + "\n")
		sb.WriteString("Error message: " + p.Error.Message + "\n\n")
	}

	// Request information.
	sb.WriteString(e.method + " " + e.url + "\n")
	for _, h := range e.requestHeaders {
		if !verbose && len(h) > maxBrevityLength {
			sb.WriteString(h[:maxBrevityLength] + truncationMarker)
		} else {
			sb.WriteString(h)
		}
		sb.WriteByte('\n')
	}
	if e.requestBody != "" {
		if verbose {
			sb.WriteString(e.requestBody)
		} else {
			sb.WriteString(truncationMarker)
		}
	}
	sb.WriteString("\n\n")

	// Response information.
	fmt.Fprintf(&sb, "%d : %s\n", e.responseCode, e.responseMessage)
	for _, h := range e.responseHeaders {
		if verbose || strings.HasPrefix(strings.ToLower(h), diagnosticHeaderPrefix) {
			sb.WriteString(h + "\n")
		}
	}

	switch {
	case verbose && e.payload != nil && e.payload.raw != nil:
		if pretty, err := json.MarshalIndent(e.payload.raw, "", "  "); err == nil {
			sb.Write(pretty)
			sb.WriteByte('\n')
		} else {
			sb.WriteString(prettyPrintWarning + "\n")
		}
	case !verbose:
		sb.WriteString(truncationMarker + "\n\n")
		sb.WriteString(brevityAdvisory)
	}

	return sb.String()
}

// FormatBytePayload renders a raw byte request payload for capture at the
// transport boundary: "byte[N] {...}" with the full contents when verbose,
// or at most maxBytePreview bytes plus the truncation marker otherwise.
func FormatBytePayload(b []byte, verbose bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "byte[%d] {", len(b))

	n := len(b)
	if !verbose && n > maxBytePreview {
		n = maxBytePreview
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", b[i])
	}
	if n < len(b) {
		if n > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(truncationMarker)
	}
	sb.WriteString("}")
	return sb.String()
}
