package devices

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maintenance-route-service/internal/platform/obs"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	maxAttempts   = 4
	maxRetryAfter = 10 * time.Second
)

// upstreamError is a non-2xx answer from the device API.
type upstreamError struct {
	Status     int
	Body       string
	RetryAfter time.Duration
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("device api status %d: %s", e.Status, e.Body)
}

func (e *upstreamError) retryable() bool {
	switch e.Status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// retryAfter reads a Retry-After header given in seconds. HTTP dates are
// ignored and fall back to the client's own backoff.
func retryAfter(h http.Header) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(h.Get("Retry-After")))
	if err != nil || secs < 0 {
		return 0
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}

func (h *HTTPDeviceSource) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "JWT "+h.token)
	}
	if id := obs.RequestID(ctx); id != "-" {
		req.Header.Set("X-Request-ID", id)
	}

	return req, nil
}

// send performs one attempt. Any status >= 400 comes back as *upstreamError
// with the body already drained and closed.
func (h *HTTPDeviceSource) send(req *http.Request) (*http.Response, error) {
	resp, err := h.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return nil, &upstreamError{
		Status:     resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
		RetryAfter: retryAfter(resp.Header),
	}
}

func shouldRetry(err error) bool {
	var ue *upstreamError
	if errors.As(err, &ue) {
		return ue.retryable()
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// sendWithRetry repeats build+send on throttling, gateway errors and
// network failures. The wait doubles per attempt; a Retry-After header
// can only lengthen it.
func (h *HTTPDeviceSource) sendWithRetry(
	ctx context.Context,
	build func() (*http.Request, error),
) (*http.Response, error) {
	wait := h.backoff

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := h.send(req)
		if err == nil {
			return resp, nil
		}
		if attempt == maxAttempts || !shouldRetry(err) {
			return nil, err
		}

		delay := wait
		var ue *upstreamError
		if errors.As(err, &ue) && ue.RetryAfter > delay {
			delay = ue.RetryAfter
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		wait *= 2
	}
}
