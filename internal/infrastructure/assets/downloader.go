package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPClient interface for testability
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError carries a non-200 HTTP status
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download failed with status %d", e.Code)
}

// Downloader fetches remote assets over HTTP
type Downloader struct {
	httpClient HTTPClient
	maxBytes   int64
	backoff    time.Duration
	logger     *zap.Logger
}

// NewDownloader creates a downloader with the given per-request timeout
func NewDownloader(timeout time.Duration, maxBytes int64, logger *zap.Logger) *Downloader {
	return &Downloader{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
		backoff:    time.Second,
		logger:     logger,
	}
}

// SetHTTPClient replaces the HTTP client
func (d *Downloader) SetHTTPClient(c HTTPClient) {
	d.httpClient = c
}

// SetBackoff sets the base retry delay
func (d *Downloader) SetBackoff(backoff time.Duration) {
	d.backoff = backoff
}

// Download fetches url once
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.logger.Warn("Download request failed",
			zap.String("url", url),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.logger.Warn("Download returned non-200 status",
			zap.Int("status", resp.StatusCode),
			zap.String("url", url))
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, &StatusError{Code: resp.StatusCode})
	}

	if d.maxBytes > 0 && resp.ContentLength > d.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	body := io.Reader(resp.Body)
	if d.maxBytes > 0 {
		body = io.LimitReader(resp.Body, d.maxBytes+1)
	}
	content, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", ErrFetchFailed, err)
	}
	if d.maxBytes > 0 && int64(len(content)) > d.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, d.maxBytes)
	}

	d.logger.Debug("Asset downloaded",
		zap.String("url", url),
		zap.Int("size", len(content)))

	return content, nil
}

// DownloadWithRetry downloads with exponential backoff.
// Permanent failures (404, 401, 403, oversized bodies) are not retried.
func (d *Downloader) DownloadWithRetry(ctx context.Context, url string, maxAttempts int) ([]byte, error) {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		content, err := d.Download(ctx, url)
		if err == nil {
			return content, nil
		}

		lastErr = err

		if isPermanentError(err) {
			d.logger.Info("Permanent error, not retrying",
				zap.Int("attempt", attempt),
				zap.Error(err))
			return nil, err
		}

		if attempt < maxAttempts {
			backoff := d.backoff * time.Duration(1<<uint(attempt-1))
			d.logger.Info("Retrying download",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err))

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("download failed after %d attempts: %w", maxAttempts, lastErr)
}

// isPermanentError checks if an error should not be retried
func isPermanentError(err error) bool {
	if errors.Is(err, ErrTooLarge) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusNotFound, http.StatusUnauthorized, http.StatusForbidden:
			return true
		}
	}
	return false
}
