// Package fetch offers one-call HTTP operations (get, head, print,
// store, mirror, and the post variants) on top of a pluggable
// transport client. Content-returning operations treat any non-2xx
// status as an error; status-returning operations (GetPrint, GetStore,
// Mirror) hand every real HTTP status back to the caller and only
// fail on transport or filesystem problems.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	neturl "net/url"
	"os"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-fetch/pkg/httpclient"
	"github.com/samvad-hq/samvad-fetch/pkg/status"
)

const (
	defaultTimeout = 30 * time.Second

	// copyChunkSize is the buffer size used when streaming bodies to
	// stdout or disk.
	copyChunkSize = 128 << 10

	// errorDrainLimit caps how much of an error-response body is read
	// before the connection is released.
	errorDrainLimit = 64 << 10
)

// ValidatorStore remembers cache validators per URL so Mirror can send
// If-None-Match alongside If-Modified-Since.
type ValidatorStore interface {
	Validators(url string) (etag, lastModified string, ok bool)
	SaveValidators(url, etag, lastModified string) error
}

// Fetcher performs single, synchronous HTTP calls. Construct one at
// application start with the options matching your transport and
// codec configuration, then reuse it; a Fetcher is safe for concurrent
// use if its client and codec are.
type Fetcher struct {
	client     httpclient.Client
	codec      Codec
	out        io.Writer
	validators ValidatorStore
}

// New builds a Fetcher. Without options it uses a resty transport with
// a 30s timeout, the goccy JSON codec, and stdout for GetPrint.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: httpclient.NewRestyClient(defaultTimeout),
		codec:  goccyCodec{},
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get fetches url and returns the response body as a string. Any
// non-2xx status is a *StatusError.
func (f *Fetcher) Get(ctx context.Context, url string) (string, error) {
	resp, err := f.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return "", err
	}
	return f.readContent(url, resp)
}

// Head fetches the headers of url without the body. Any non-2xx
// status is a *StatusError.
func (f *Fetcher) Head(ctx context.Context, url string) (http.Header, error) {
	resp, err := f.do(ctx, http.MethodHead, url, nil, nil)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	if !status.IsSuccess(resp.StatusCode) {
		return nil, &StatusError{StatusCode: resp.StatusCode, Reason: resp.Reason()}
	}
	return resp.Headers, nil
}

// GetPrint streams the body of url to the configured output writer
// (stdout by default) and returns the HTTP status. HTTP error
// statuses are returned as data, not errors.
func (f *Fetcher) GetPrint(ctx context.Context, url string) (int, error) {
	resp, err := f.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	buf := make([]byte, copyChunkSize)
	if _, err := io.CopyBuffer(f.out, resp.Body, buf); err != nil {
		return 0, &TransportError{URL: url, Err: err}
	}
	return resp.StatusCode, nil
}

// GetStore streams the body of url into the file at path, staging it
// in a same-directory temp file and renaming into place so a partial
// download is never visible at path. Returns the HTTP status; like
// GetPrint, HTTP error statuses are data.
func (f *Fetcher) GetStore(ctx context.Context, url, path string) (int, error) {
	resp, err := f.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := f.storeBody(url, resp, path); err != nil {
		return 0, err
	}
	return resp.StatusCode, nil
}

// Mirror is GetStore with conditional-GET semantics: it sends
// If-Modified-Since from the existing file's mtime (and If-None-Match
// when a validator store is configured), leaves the file untouched on
// 304, and stamps a stored file with the server's Last-Modified time.
func (f *Fetcher) Mirror(ctx context.Context, url, path string) (int, error) {
	headers := make(map[string]string, 2)
	if fi, err := os.Stat(path); err == nil {
		headers["If-Modified-Since"] = fi.ModTime().UTC().Format(http.TimeFormat)
	}
	if f.validators != nil {
		if etag, _, ok := f.validators.Validators(url); ok && etag != "" {
			headers["If-None-Match"] = etag
		}
	}

	resp, err := f.do(ctx, http.MethodGet, url, headers, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return resp.StatusCode, nil
	}

	if err := f.storeBody(url, resp, path); err != nil {
		return 0, err
	}

	lastModified := resp.Headers.Get("Last-Modified")
	if lastModified != "" {
		if t, err := http.ParseTime(lastModified); err == nil {
			// keep the local copy's mtime aligned with the origin so the
			// next If-Modified-Since round-trips correctly
			_ = os.Chtimes(path, t, t)
		}
	}
	if f.validators != nil {
		_ = f.validators.SaveValidators(url, resp.Headers.Get("ETag"), lastModified)
	}
	return resp.StatusCode, nil
}

// PostForm sends fields urlencoded (multi-value keys preserved) and
// returns the response body. Any non-2xx status is a *StatusError.
func (f *Fetcher) PostForm(ctx context.Context, url string, fields neturl.Values) (string, error) {
	headers := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	body := strings.NewReader(fields.Encode())
	resp, err := f.do(ctx, http.MethodPost, url, headers, body)
	if err != nil {
		return "", err
	}
	return f.readContent(url, resp)
}

// PostJSON encodes data with the configured codec and posts it with
// Content-Type application/json; charset=UTF-8. Encode failures are
// *JSONError; any non-2xx status is a *StatusError.
func (f *Fetcher) PostJSON(ctx context.Context, url string, data any) (string, error) {
	encoded, err := f.codec.Marshal(data)
	if err != nil {
		return "", &JSONError{Op: "encode", Err: err}
	}
	headers := map[string]string{"Content-Type": "application/json; charset=UTF-8"}
	resp, err := f.do(ctx, http.MethodPost, url, headers, bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}
	return f.readContent(url, resp)
}

// PostFile streams the file at path as the POST body. An empty
// contentType defaults to application/octet-stream. A file that
// cannot be opened yields a *FilesystemError before any network call.
func (f *Fetcher) PostFile(ctx context.Context, url, path, contentType string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", &FilesystemError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	headers := map[string]string{"Content-Type": contentType}
	resp, err := f.do(ctx, http.MethodPost, url, headers, file)
	if err != nil {
		return "", err
	}
	return f.readContent(url, resp)
}

// GetJSON fetches url and decodes the body into v with the configured
// codec. Decode failures are *JSONError.
func (f *Fetcher) GetJSON(ctx context.Context, url string, v any) error {
	body, err := f.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := f.codec.Unmarshal([]byte(body), v); err != nil {
		return &JSONError{Op: "decode", Err: err}
	}
	return nil
}

// do performs one exchange, translating transport failures into
// *TransportError.
func (f *Fetcher) do(ctx context.Context, method, url string, headers map[string]string, body io.Reader) (*httpclient.Response, error) {
	resp, err := f.client.Do(ctx, &httpclient.Request{
		Method:  method,
		URL:     url,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	return resp, nil
}

// readContent consumes the body for content-returning operations:
// the body string on 2xx, *StatusError otherwise.
func (f *Fetcher) readContent(url string, resp *httpclient.Response) (string, error) {
	defer resp.Body.Close()

	if !status.IsSuccess(resp.StatusCode) {
		// drain a bounded amount so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorDrainLimit))
		return "", &StatusError{StatusCode: resp.StatusCode, Reason: resp.Reason()}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	return string(body), nil
}

// storeBody streams resp's body into path through the atomic writer.
// A mid-stream read failure removes the staged file and surfaces as
// *TransportError; close and rename failures are *FilesystemError.
func (f *Fetcher) storeBody(url string, resp *httpclient.Response, path string) error {
	w, err := newAtomicWriter(path)
	if err != nil {
		return err
	}
	defer w.Abort()

	buf := make([]byte, copyChunkSize)
	if _, err := io.CopyBuffer(w, resp.Body, buf); err != nil {
		var fsErr *FilesystemError
		if errors.As(err, &fsErr) {
			return fsErr
		}
		return &TransportError{URL: url, Err: err}
	}
	return w.Commit()
}
