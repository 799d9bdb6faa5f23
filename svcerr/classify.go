package svcerr

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// Classify builds the ServiceError for one failed exchange. It is pure and
// total: response headers are normalized into a sorted "name : value" list
// (names compared case-insensitively, duplicates collapse last-wins), request
// headers are redacted, and the variant tag is picked from the status code.
// Status codes >= 500 yield the fatal variant, everything below the ordinary
// one; the two differ only in the tag, never in layout or rendering.
//
// requestHeaders entries are expected in "name : value" form, as captured at
// the transport boundary. requestBody is the human-readable capture of the
// request payload, empty when none was sent. payload may be nil only when no
// body parsing was attempted.
func Classify(method, url string, requestHeaders []string, requestBody string,
	responseHeaders map[string]string, responseMessage string, responseCode int,
	payload *ErrorResponse, verbose bool) *ServiceError {

	return &ServiceError{
		method:          method,
		url:             url,
		requestHeaders:  RedactHeaders(requestHeaders),
		requestBody:     requestBody,
		responseCode:    responseCode,
		responseMessage: responseMessage,
		responseHeaders: formatHeaderMap(responseHeaders),
		payload:         payload,
		verbose:         verbose,
		fatal:           responseCode >= http.StatusInternalServerError,
	}
}

// FromResponse turns a live failed exchange into a ServiceError. The response
// body is drained exactly once and closed on every exit path, including when
// the payload does not decode; draining is the only I/O this package does.
// The returned error is non-nil only for I/O failures while reading the body,
// which happen before classification and are the caller's problem.
func FromResponse(req *http.Request, requestBody string, resp *http.Response,
	dec Decoder, verbose bool) (*ServiceError, error) {

	raw, err := drainBody(resp)
	if err != nil {
		return nil, fmt.Errorf("drain error response: %w", err)
	}
	payload := ParseErrorBody(dec, raw, resp.Header)

	method, url := "", ""
	var reqHeaders []string
	if req != nil {
		method = req.Method
		if req.URL != nil {
			url = req.URL.String()
		}
		reqHeaders = formatRequestHeaders(req.Header)
	}

	return Classify(method, url, reqHeaders, requestBody,
		collapseHeader(resp.Header), reasonPhrase(resp), resp.StatusCode,
		payload, verbose), nil
}

func drainBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// reasonPhrase pulls the status line reason out of resp.Status ("503 Service
// Unavailable" -> "Service Unavailable"), falling back to the canonical text.
func reasonPhrase(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if s, ok := strings.CutPrefix(resp.Status, prefix); ok && s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}

// collapseHeader flattens a multi-value header collection into name -> last
// value, matching how classification consumes response headers.
func collapseHeader(h http.Header) map[string]string {
	m := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		m[name] = values[len(values)-1]
	}
	return m
}

// formatRequestHeaders captures request headers as "name : value" entries,
// one per value, sorted by name for determinism.
func formatRequestHeaders(h http.Header) []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		for _, v := range h[name] {
			out = append(out, name+" : "+v)
		}
	}
	return out
}

// formatHeaderMap turns the name->value response header map into the sorted
// "name : value" list. Names that differ only by case collapse to one entry;
// with map input "last" is made deterministic by folding keys in sorted
// order, so the later sorted spelling wins.
func formatHeaderMap(headers map[string]string) []string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	type entry struct{ name, value string }
	byFold := make(map[string]int, len(keys))
	entries := make([]entry, 0, len(keys))
	for _, k := range keys {
		lower := strings.ToLower(k)
		if i, ok := byFold[lower]; ok {
			entries[i] = entry{name: k, value: headers[k]}
			continue
		}
		byFold[lower] = len(entries)
		entries = append(entries, entry{name: k, value: headers[k]})
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].name) < strings.ToLower(entries[j].name)
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name + " : " + e.value
	}
	return out
}
