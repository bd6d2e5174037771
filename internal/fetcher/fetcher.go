package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-cleanhttp"

	"dummysite/pkg/logging"
)

const (
	// indexFileName is the name the fetched page is stored under.
	indexFileName = "index.html"

	// DefaultMaxPageBytes is the largest response body a Fetcher accepts.
	DefaultMaxPageBytes = 16 << 20
)

// ErrPageTooLarge is returned when a response body exceeds the size limit.
var ErrPageTooLarge = errors.New("page exceeds size limit")

// Result is the outcome of a successful fetch.
type Result struct {
	// Text is the visible text of the page, whitespace collapsed.
	Text string

	// Assets lists the files written to the destination directory.
	Assets []string
}

// Fetcher downloads a page into a scratch directory and extracts its text.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// New creates a Fetcher using a non-shared cleanhttp client.
// No timeout is set; a hanging server blocks the caller until ctx ends.
func New() *Fetcher {
	return NewWithClient(cleanhttp.DefaultClient())
}

// NewWithClient creates a Fetcher using the given HTTP client.
func NewWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client, maxBytes: DefaultMaxPageBytes}
}

// Fetch retrieves url and stores it below destination, which is emptied first.
func (f *Fetcher) Fetch(ctx context.Context, url, destination string) (*Result, error) {
	if err := os.RemoveAll(destination); err != nil {
		return nil, fmt.Errorf("failed to clear %s: %w", destination, err)
	}
	if err := os.MkdirAll(destination, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", destination, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}

	// One byte past the limit tells a page of exactly maxBytes from a longer one
	page, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	if int64(len(page)) > f.maxBytes {
		return nil, fmt.Errorf("failed to fetch %s: %w (%d bytes)", url, ErrPageTooLarge, f.maxBytes)
	}

	indexPath := filepath.Join(destination, indexFileName)
	if err := os.WriteFile(indexPath, page, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", url, err)
	}

	text, err := ExtractText(page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}

	logging.Debug("Fetcher", "Fetched %s (%d bytes) into %s", url, len(page), destination)
	return &Result{
		Text:   text,
		Assets: []string{indexPath},
	}, nil
}
