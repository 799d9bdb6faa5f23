package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tmarkko/svcfail/svcerr"
	"github.com/tmarkko/svcfail/utils"
)

const defaultUserAgent = "svcfail/0.1"

// Client is a JSON-over-HTTP API client. Every non-2xx exchange comes back
// as a *svcerr.ServiceError carrying the classified, redacted failure record.
type Client struct {
	BaseURL    string
	Token      string
	UserAgent  string
	HTTPClient *http.Client
	Verbose    bool
	MaxRetries int

	decoder svcerr.Decoder
}

type Option func(*Client) error

// WithToken sets the bearer token sent as the Authorization header. The
// token never survives into a ServiceError; redaction replaces it.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.Token = token
		return nil
	}
}

// WithHTTPClient swaps the underlying *http.Client. Nil is rejected.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.HTTPClient = hc
		return nil
	}
}

// WithHTTPTimeout sets the per-request timeout on the underlying client.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive")
		}
		c.HTTPClient.Timeout = d
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(ua) == "" {
			return fmt.Errorf("user agent cannot be blank")
		}
		c.UserAgent = ua
		return nil
	}
}

// WithVerbose fixes the error-reporting mode. When unset it defaults from
// the environment (SVCFAIL_DEBUG / DEBUG).
func WithVerbose(v bool) Option {
	return func(c *Client) error {
		c.Verbose = v
		return nil
	}
}

// WithDecoder swaps the error-body decoder handed to the classifier.
func WithDecoder(d svcerr.Decoder) Option {
	return func(c *Client) error {
		if d == nil {
			return fmt.Errorf("decoder cannot be nil")
		}
		c.decoder = d
		return nil
	}
}

// WithMaxRetries caps how many times a retryable failure is re-attempted.
func WithMaxRetries(n int) Option {
	return func(c *Client) error {
		if n < 0 {
			return fmt.Errorf("max retries cannot be negative")
		}
		c.MaxRetries = n
		return nil
	}
}

// NewClient builds a client for the API rooted at baseURL. A trailing slash
// is enforced so path joining stays predictable.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{
		BaseURL:    baseURL,
		UserAgent:  defaultUserAgent,
		HTTPClient: &http.Client{},
		Verbose:    utils.VerboseFromEnv(),
		decoder:    svcerr.JSONDecoder{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	c.HTTPClient.Transport = newDebugTransport(c.HTTPClient.Transport, c.Verbose)
	return c, nil
}

// Get performs a GET and decodes the JSON response into v (may be nil).
func (c *Client) Get(ctx context.Context, path string, v any) error {
	_, err := c.doWithRetry(ctx, http.MethodGet, path, nil, "", "", v)
	return err
}

// Post encodes payload as the request body and decodes the JSON response
// into v (may be nil). A []byte payload is sent verbatim as octets; anything
// else is JSON-encoded. The capture stored on a failure follows the verbose
// flag: byte payloads get a short preview, JSON payloads the encoded text.
func (c *Client) Post(ctx context.Context, path string, payload, v any) error {
	body, bodyText, contentType, err := c.encodePayload(payload)
	if err != nil {
		return err
	}
	_, err = c.doWithRetry(ctx, http.MethodPost, path, body, bodyText, contentType, v)
	return err
}

func (c *Client) encodePayload(payload any) (body []byte, bodyText, contentType string, err error) {
	switch p := payload.(type) {
	case nil:
		return nil, "", "", nil
	case []byte:
		return p, svcerr.FormatBytePayload(p, c.Verbose), "application/octet-stream", nil
	default:
		buf, err := utils.EncodeJSONBody(p)
		if err != nil {
			return nil, "", "", fmt.Errorf("encode payload: %w", err)
		}
		data := buf.Bytes()
		return data, strings.TrimSpace(string(data)), "application/json", nil
	}
}

// do sends one request. Non-2xx responses are drained, classified and
// returned as *svcerr.ServiceError; the response body is closed on every
// path.
func (c *Client) do(ctx context.Context, method, path string, body []byte,
	bodyText, contentType string, v any) (*http.Response, error) {

	target := c.BaseURL + strings.TrimPrefix(path, "/")

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		svcErr, derr := svcerr.FromResponse(req, bodyText, resp, c.decoder, c.Verbose)
		if derr != nil {
			return resp, fmt.Errorf("read error response: %w", derr)
		}
		return resp, svcErr
	}

	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return resp, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp, nil
}
