package fetch

import "fmt"

// TransportError reports a failure before or while talking to the
// server: DNS, connect, TLS, timeout, or a body read cut short. No
// HTTP status was (fully) obtained.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("transport failure: %v", e.Err)
	}
	return fmt.Sprintf("transport failure for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a well-formed HTTP response whose status falls
// outside the success range, for operations that return content.
type StatusError struct {
	StatusCode int
	Reason     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Reason)
}

// FilesystemError reports a failed file operation, carrying the
// operation name and the path it targeted.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// JSONError reports a codec encode or decode failure.
type JSONError struct {
	Op  string
	Err error
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("json %s: %v", e.Op, e.Err)
}

func (e *JSONError) Unwrap() error { return e.Err }
