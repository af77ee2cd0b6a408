// Package fetcher retrieves rendered pages over HTTP for the optimize and
// scan commands.
package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "lcpboost/1.0 (+https://github.com/speedkit/lcpboost)"

type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetHTML fetches url and returns the response body. Anything but a 200
// is an error: a partial or error page is not worth optimizing.
func (f *Fetcher) GetHTML(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch HTML, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
