// Package status classifies numeric HTTP status codes into their
// standard classes. All functions are pure range tests over int, so
// out-of-range inputs simply fail every class.
package status

// IsInfo reports whether s is an informational (1xx) status.
func IsInfo(s int) bool { return s >= 100 && s < 200 }

// IsSuccess reports whether s is a success (2xx) status.
func IsSuccess(s int) bool { return s >= 200 && s < 300 }

// IsRedirect reports whether s is a redirection (3xx) status.
func IsRedirect(s int) bool { return s >= 300 && s < 400 }

// IsClientError reports whether s is a client error (4xx) status.
func IsClientError(s int) bool { return s >= 400 && s < 500 }

// IsServerError reports whether s is a server error (5xx) status.
func IsServerError(s int) bool { return s >= 500 && s < 600 }

// IsError reports whether s is either a client or a server error.
func IsError(s int) bool { return IsClientError(s) || IsServerError(s) }
