package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/farxc/painel-seguros/internal/logger"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

// ErrHTMLResponse is returned when the server answers with a web page
// instead of an export, typically a sign-in page.
var ErrHTMLResponse = errors.New("received an HTML page instead of a spreadsheet export (is the sheet shared publicly?)")

// DefaultTimeout bounds a single export download.
const DefaultTimeout = 20 * time.Second

// Exports are small; anything bigger than this is rejected as malformed.
const maxBodyBytes = 64 << 20

type Downloader struct {
	client *http.Client
	logger *logger.Logger
}

// New returns a Downloader whose requests time out after timeout
// (DefaultTimeout when timeout <= 0).
func New(timeout time.Duration, appLogger *logger.Logger) *Downloader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &http.Client{Timeout: timeout}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return fmt.Errorf("stopped after %d redirects", len(via))
		}
		req.Header.Set("User-Agent", userAgent)
		return nil
	}

	return &Downloader{client: client, logger: appLogger}
}

// FetchData downloads url and returns the response body.
func (d *Downloader) FetchData(ctx context.Context, url string) ([]byte, error) {
	const component = "Downloader"

	d.logger.Debug(component, "Starting download: url=%s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Error(component, "HTTP request failed: url=%s error=%v", url, err)
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.logger.Warn(component, "Non-OK HTTP response: url=%s status=%s statusCode=%d", url, resp.Status, resp.StatusCode)
		return nil, fmt.Errorf("unexpected HTTP status %s", resp.Status)
	}

	// a private or mistyped sheet answers 200 with a sign-in page
	if mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mediaType == "text/html" {
		d.logger.Warn(component, "HTML page instead of an export: url=%s", url)
		return nil, ErrHTMLResponse
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		d.logger.Error(component, "Failed to read response body: url=%s error=%v", url, err)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)
	}

	d.logger.Info(component, "Download completed: url=%s size=%d bytes", url, len(body))
	return body, nil
}
