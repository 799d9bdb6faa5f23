package svcerr

import "strings"

// RedactedValue replaces sensitive request header values before they are
// stored anywhere.
const RedactedValue = "[PII_REDACTED]"

// headersToRedact lists the request header names whose values must never
// reach a stored ServiceError. Matching is a case-sensitive prefix check on
// the full "name : value" entry, so names are compared before any value
// content.
var headersToRedact = []string{"Authorization"}

// RedactHeaders returns a new slice with every sensitive entry replaced by
// "<name> : [PII_REDACTED]". The input is never mutated; callers should drop
// their reference to the original list after calling this. Redaction is
// idempotent: an already-redacted entry still matches its name prefix and is
// rewritten to the same text.
func RedactHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = h
		for _, name := range headersToRedact {
			if strings.HasPrefix(h, name) {
				out[i] = name + " : " + RedactedValue
				break
			}
		}
	}
	return out
}
