// Package fetch retrieves raw lexicon category sources over HTTP at
// build time. Each category maps to one file under a fixed base URL.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FetchError is a network or status failure for one category. It is
// fatal: the build pipeline aborts on the first category that fails.
type FetchError struct {
	Category string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch category %q: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("fetch category %q: status %d", e.Category, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client implements ports.Fetcher over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a fetcher rooted at baseURL. Category sources are
// expected at <baseURL>/<category>.js.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchCategory retrieves the raw source text for one category.
func (c *Client) FetchCategory(category string) (string, error) {
	url := fmt.Sprintf("%s/%s.js", c.baseURL, category)

	resp, err := c.http.Get(url)
	if err != nil {
		return "", &FetchError{Category: category, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Category: category, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Category: category, Err: err}
	}
	return string(body), nil
}
