package svcerr

import "net/http"

// ServiceError is the immutable record of one failed HTTP exchange: request
// and response metadata, the parsed (or fallback) payload, and the rendering
// mode fixed at construction. Build one with Classify or FromResponse; the
// zero value is not useful.
//
// Request headers are stored redacted — no code path can read an unredacted
// Authorization value out of a constructed ServiceError.
type ServiceError struct {
	method          string
	url             string
	requestHeaders  []string
	requestBody     string
	responseCode    int
	responseMessage string
	responseHeaders []string
	payload         *ErrorResponse
	verbose         bool
	fatal           bool
}

var _ error = (*ServiceError)(nil)

// Error returns a short summary: the service-reported message when present,
// otherwise the status reason. Use Message for the full report.
func (e *ServiceError) Error() string {
	if e.payload != nil && e.payload.Error != nil && e.payload.Error.Message != "" {
		return e.payload.Error.Message
	}
	if e.responseMessage != "" {
		return e.responseMessage
	}
	return http.StatusText(e.responseCode)
}

// Message renders the full report using the verbosity fixed at construction.
func (e *ServiceError) Message() string {
	return renderMessage(e, e.verbose)
}

// MessageMode renders the full report with an explicit verbosity override.
func (e *ServiceError) MessageMode(verbose bool) string {
	return renderMessage(e, verbose)
}

// IsFatal reports whether this is the fatal variant (status >= 500,
// server-side failure). The ordinary variant (status < 500) is a
// client-correctable failure. Upstream retry policy switches on this tag.
func (e *ServiceError) IsFatal() bool { return e.fatal }

// Method returns the HTTP verb of the failed request.
func (e *ServiceError) Method() string { return e.method }

// URL returns the target URL of the failed request.
func (e *ServiceError) URL() string { return e.url }

// ResponseCode returns the HTTP status code.
func (e *ServiceError) ResponseCode() int { return e.responseCode }

// ResponseMessage returns the status line reason phrase.
func (e *ServiceError) ResponseMessage() string { return e.responseMessage }

// RequestBody returns the captured request payload text, empty when none was
// sent.
func (e *ServiceError) RequestBody() string { return e.requestBody }

// Verbose reports the rendering mode fixed at construction.
func (e *ServiceError) Verbose() bool { return e.verbose }

// RequestHeaders returns a copy of the redacted "name : value" entries.
func (e *ServiceError) RequestHeaders() []string {
	return append([]string(nil), e.requestHeaders...)
}

// ResponseHeaders returns a copy of the normalized "name : value" entries.
func (e *ServiceError) ResponseHeaders() []string {
	return append([]string(nil), e.responseHeaders...)
}

// Payload returns a deep copy of the structured payload, or nil when no body
// parsing was attempted. Mutating the copy does not touch the stored payload.
func (e *ServiceError) Payload() *ErrorResponse { return e.payload.Copy() }

// ServiceCause returns a copy of the service-reported error identity, or nil.
func (e *ServiceError) ServiceCause() *ServiceCause {
	if e.payload == nil || e.payload.Error == nil {
		return nil
	}
	c := *e.payload.Error
	if c.InnerError != nil {
		ie := *c.InnerError
		c.InnerError = &ie
	}
	return &c
}
