package fetch

import (
	"io"

	"github.com/samvad-hq/samvad-fetch/pkg/httpclient"
)

// Option configures a Fetcher at construction time.
type Option func(*Fetcher)

// WithClient sets the transport client. All network behavior
// (timeouts, redirects, proxies, TLS) is the client's contract.
func WithClient(c httpclient.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithCodec sets the JSON codec used by PostJSON and GetJSON.
func WithCodec(c Codec) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.codec = c
		}
	}
}

// WithOutput redirects GetPrint's output away from stdout.
func WithOutput(w io.Writer) Option {
	return func(f *Fetcher) {
		if w != nil {
			f.out = w
		}
	}
}

// WithValidatorStore lets Mirror remember ETags and Last-Modified
// values between runs.
func WithValidatorStore(s ValidatorStore) Option {
	return func(f *Fetcher) { f.validators = s }
}
