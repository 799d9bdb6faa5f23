package svcerr

import "encoding/json"

// ErrorResponse is the structured shape of a service error body. It is either
// decoded from the response as-is, or synthesized by ParseErrorBody when the
// body cannot be decoded.
type ErrorResponse struct {
	Error *ServiceCause `json:"error"`

	// raw keeps the original decoded tree for verbose rendering. Never
	// exposed directly; see RawPayload.
	raw any
}

// ServiceCause is the service-reported error identity.
type ServiceCause struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	InnerError *InnerError `json:"innererror"`
}

// InnerError carries nested diagnostic detail. The parse fallback puts the
// decoder's failure text here.
type InnerError struct {
	Code string `json:"code"`
}

// UnmarshalJSON decodes the structured shape and additionally captures the
// raw tree so verbose rendering can show the payload exactly as received.
func (r *ErrorResponse) UnmarshalJSON(data []byte) error {
	type plain ErrorResponse
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ErrorResponse(p)
	r.raw = raw
	return nil
}

// SetRaw stores the original decoded tree used for verbose rendering.
// JSON decoding captures it automatically via UnmarshalJSON; custom Decoders
// call this when they can provide one.
func (r *ErrorResponse) SetRaw(v any) { r.raw = v }

// RawPayload returns a copy of the original decoded tree, or nil when the
// body never decoded. Mutating the result does not touch the stored payload.
func (r *ErrorResponse) RawPayload() any {
	if r == nil {
		return nil
	}
	return copyValue(r.raw)
}

// Copy returns a deep copy. Callers get their own ErrorResponse to poke at;
// the one stored inside a ServiceError stays untouched.
func (r *ErrorResponse) Copy() *ErrorResponse {
	if r == nil {
		return nil
	}
	out := &ErrorResponse{raw: copyValue(r.raw)}
	if r.Error != nil {
		c := *r.Error
		if c.InnerError != nil {
			ie := *c.InnerError
			c.InnerError = &ie
		}
		out.Error = &c
	}
	return out
}

// copyValue deep-copies the JSON-like trees produced by decoding (maps,
// slices, scalars). Anything else is assumed immutable and shared.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = copyValue(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = copyValue(vv)
		}
		return s
	default:
		return v
	}
}
