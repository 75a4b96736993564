package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Document is the content fetched for one URL.
type Document struct {
	URL     string
	Content string
}

// Corpus looks up reference content by URL. Callers treat a nil Corpus as
// the capability being absent; lookup failures are best-effort and must not
// surface as user-facing errors.
type Corpus interface {
	LookupURLs(ctx context.Context, urls []string) ([]Document, error)
}

// HTTPCorpus fetches documents over plain HTTP GET.
type HTTPCorpus struct {
	client *http.Client
}

// NewHTTPCorpus creates an HTTPCorpus with a request timeout.
func NewHTTPCorpus(timeout time.Duration) *HTTPCorpus {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPCorpus{client: &http.Client{Timeout: timeout}}
}

func (c *HTTPCorpus) LookupURLs(ctx context.Context, urls []string) ([]Document, error) {
	docs := make([]Document, 0, len(urls))
	for _, url := range urls {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request for %s: %w", url, err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", url, readErr)
		}

		docs = append(docs, Document{URL: url, Content: string(body)})
	}
	return docs, nil
}

// TruncationMarker is appended when Truncate shortens content.
const TruncationMarker = " [CONTEXT TRUNCATED]"

// Truncate caps content at max characters, appending the truncation marker
// when it had to cut.
func Truncate(content string, max int) string {
	if max <= 0 || len(content) <= max {
		return content
	}
	return content[:max] + TruncationMarker
}
