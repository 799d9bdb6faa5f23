package client

import (
	"net/http"
	"net/http/httputil"

	"github.com/rs/zerolog/log"
)

// debugTransport dumps full request/response traffic through zerolog when
// the client runs in verbose mode. Dumps include bodies and headers, so this
// stays off unless verbose reporting was explicitly requested.
type debugTransport struct {
	base    http.RoundTripper
	enabled bool
}

func newDebugTransport(base http.RoundTripper, enabled bool) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if !enabled {
		return base
	}
	return &debugTransport{base: base, enabled: enabled}
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).
			Str("request_dump", string(dump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).
			Msg("HTTP request failed")
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).
			Int("status_code", resp.StatusCode).
			Str("response_dump", string(dump)).Msg("HTTP response")
	}
	return resp, nil
}
