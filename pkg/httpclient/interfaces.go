package httpclient

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Request describes a single HTTP exchange to perform. It is built by
// the caller and not mutated by the client once passed to Do.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body, when non-nil, is streamed as the request body. The client
	// does not buffer it and does not restart it.
	Body io.Reader
}

// Response is the transport's view of a completed HTTP exchange. A
// Response always carries a real server status; transport-level
// failures (DNS, connect, TLS, timeout) are reported as errors from
// Do instead.
type Response struct {
	StatusCode int
	// Status is the status line text as received, e.g. "404 Not Found".
	Status  string
	Headers http.Header
	// Body streams the response body. The caller must close it.
	Body io.ReadCloser
}

// Reason returns the reason phrase of the status line, falling back
// to the standard phrase when the server sent a bare code.
func (r *Response) Reason() string {
	reason := strings.TrimSpace(strings.TrimPrefix(r.Status, strconv.Itoa(r.StatusCode)))
	if reason == "" {
		reason = http.StatusText(r.StatusCode)
	}
	return reason
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}
