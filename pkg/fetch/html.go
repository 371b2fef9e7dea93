package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/samvad-hq/samvad-fetch/pkg/status"
)

const maxHTMLBodyBytes = 1 << 20 // 1 MiB

// GetDoc fetches url and parses the body as an HTML document. The
// body is capped at 1 MiB; pages larger than that are parsed from
// their first megabyte. Any non-2xx status is a *StatusError.
func (f *Fetcher) GetDoc(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := f.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !status.IsSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorDrainLimit))
		return nil, &StatusError{StatusCode: resp.StatusCode, Reason: resp.Reason()}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxHTMLBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse html from %s: %w", url, err)
	}
	return doc, nil
}
