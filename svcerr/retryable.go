package svcerr

import (
	"errors"
	"io"
	"math/rand"
	"net/http"
	"syscall"
	"time"
)

// IsRetryable says "worth another shot?" (backoff still on the caller).
// Fatal service errors (status >= 500) are retry-eligible by definition;
// ordinary ones are not, except the conventional transient statuses.
func IsRetryable(err error) bool {
	// timeouts from net/http, http2, tls, etc.
	var to interface{ Timeout() bool }
	if errors.As(err, &to) && to.Timeout() {
		return true
	}

	// flaky connections / short reads
	if errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var se *ServiceError
	if errors.As(err, &se) {
		if se.IsFatal() {
			return true
		}
		switch se.ResponseCode() {
		case http.StatusRequestTimeout, // 408
			http.StatusTooEarly,        // 425
			http.StatusTooManyRequests: // 429
			return true
		}
	}
	return false
}

// JitteredBackoff returns ~0.5x..1.5x of base with uniform jitter.
// If base <= 0, defaults to 300ms.
func JitteredBackoff(base time.Duration) time.Duration {
	if base <= 0 {
		base = 300 * time.Millisecond
	}
	// delta: [0, base)
	delta := time.Duration(rand.Int63n(int64(base)))
	return base/2 + delta
}
