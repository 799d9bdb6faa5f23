package svcerr

import "net/http"

// Fallback identity used when the error body cannot be decoded.
const (
	parseFailureCode = "Unable to parse error response message"
	rawErrorPrefix   = "Raw error: "
)

// ParseErrorBody decodes raw into an ErrorResponse through dec. It never
// fails outward: when dec rejects the body (malformed JSON, empty bytes,
// wrong schema) the result is a fallback ErrorResponse carrying the body
// verbatim as text plus the decoder's failure reason, so no diagnostic
// detail is lost even when the server's error schema is absent or broken.
//
// Empty bodies go through the same decode attempt; callers never special-case
// "no body".
func ParseErrorBody(dec Decoder, raw []byte, headers http.Header) *ErrorResponse {
	if dec == nil {
		dec = JSONDecoder{}
	}
	var er ErrorResponse
	if err := dec.Decode(raw, &er, headers); err != nil {
		return &ErrorResponse{
			Error: &ServiceCause{
				Code:       parseFailureCode,
				Message:    rawErrorPrefix + string(raw),
				InnerError: &InnerError{Code: err.Error()},
			},
		}
	}
	return &er
}
