package client

import (
	"context"
	"net/http"
	"time"

	"github.com/tmarkko/svcfail/svcerr"
)

const initialBackoff = 300 * time.Millisecond

// doWithRetry runs do up to MaxRetries+1 times, retrying only failures
// svcerr.IsRetryable accepts (fatal service errors, transient statuses,
// timeouts). Backoff doubles per attempt with jitter; context cancellation
// wins over sleeping.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body []byte,
	bodyText, contentType string, v any) (*http.Response, error) {

	backoff := initialBackoff
	attempts := c.MaxRetries + 1

	var resp *http.Response
	var err error
	for i := 0; i < attempts; i++ {
		resp, err = c.do(ctx, method, path, body, bodyText, contentType, v)
		if err == nil {
			return resp, nil
		}
		if !svcerr.IsRetryable(err) || i == attempts-1 {
			return resp, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(svcerr.JitteredBackoff(backoff)):
		}
		backoff *= 2
	}
	return resp, err
}
