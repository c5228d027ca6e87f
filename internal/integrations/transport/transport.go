// Package transport performs the single outbound provider call and captures
// its raw status and body.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"

	"hub-assistant/internal/domain"
)

const (
	DefaultTimeout = 60 * time.Second
	maxBodyBytes   = 1 << 20
)

// Error reports a call that could not be completed. StatusCode is the status
// received before the failure, or 0 when no response arrived.
type Error struct {
	StatusCode int
	URL        string
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport: post %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("transport: post %s: status %d: %v", e.URL, e.StatusCode, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) HTTPStatusCode() int {
	return e.StatusCode
}

// NewHTTPClient returns the default client used for provider calls.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// PostJSON sends payload once and returns the response for any HTTP status.
// Non-2xx is not an error; only a call that could not be completed is.
// logURL is the URL reported in errors, so callers can hide query secrets.
func PostJSON(ctx context.Context, client *http.Client, url, logURL string, header http.Header, payload []byte) (domain.ProviderResponse, error) {
	if client == nil {
		client = NewHTTPClient()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return domain.ProviderResponse{}, &Error{URL: logURL, Err: fmt.Errorf("create request: %w", err)}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return domain.ProviderResponse{}, &Error{URL: logURL, Err: redact(err, logURL)}
	}
	defer func() { _ = res.Body.Close() }()

	buf, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return domain.ProviderResponse{StatusCode: res.StatusCode, Body: buf}, &Error{
			StatusCode: res.StatusCode,
			URL:        logURL,
			Body:       buf,
			Err:        fmt.Errorf("read response body: %w", redact(err, logURL)),
		}
	}
	return domain.ProviderResponse{StatusCode: res.StatusCode, Body: buf}, nil
}

// redact replaces the request URL carried by net/http errors, which may hold
// a query-string key, with logURL.
func redact(err error, logURL string) error {
	var urlErr *neturl.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = logURL
	}
	return err
}
