package assetcache

import (
	"context"
	"io"
	"net/http"
	"time"

	"futurtask/internal/errors"
)

// Response is a buffered HTTP response
type Response struct {
	Status    int
	Header    http.Header
	Body      []byte
	FromCache bool
}

// OK reports whether the status is in the 2xx range
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Fetcher performs network requests
type Fetcher interface {
	Fetch(ctx context.Context, req *http.Request) (*Response, error)
}

// HTTPFetcher fetches over an http.Client
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher whose requests time out after timeout
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch sends req and buffers the response body. Transport failures are
// returned as network errors; HTTP error statuses are not errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, req *http.Request) (*Response, error) {
	out := req.Clone(ctx)
	out.RequestURI = ""

	resp, err := f.client.Do(out)
	if err != nil {
		return nil, errors.NewNetworkError(req.URL.String(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError(req.URL.String(), err)
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}
