package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// Failure kinds observed at fetcher boundaries. Every upstream error wraps
// exactly one of these so callers can classify with errors.Is.
var (
	ErrTransport     = errors.New("upstream transport failure")
	ErrRejected      = errors.New("upstream rejected request")
	ErrMalformed     = errors.New("upstream response malformed")
	ErrNotConfigured = errors.New("upstream not configured")
)

const (
	// DataTimeout bounds full data calls.
	DataTimeout = 10 * time.Second
	// ProbeTimeout bounds lightweight existence checks.
	ProbeTimeout = 3 * time.Second
)

// StatusError wraps ErrRejected and carries the HTTP status for the
// one-shot authorization retry decision.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: status %d", ErrRejected, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrRejected }

// IsAuthRejection reports whether err is a rejection with an authorization
// semantic (401 or 403).
func IsAuthRejection(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden)
}

// NewClient returns the standard data-call client.
func NewClient() *http.Client {
	return &http.Client{Timeout: DataTimeout}
}

// NewProbeClient returns the short-timeout client for existence checks.
func NewProbeClient() *http.Client {
	return &http.Client{Timeout: ProbeTimeout}
}

// GetJSON performs a GET and decodes a 200 response body into out.
// Non-200 maps to ErrRejected, transport errors to ErrTransport and decode
// errors to ErrMalformed.
func GetJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// Resolves reports whether a HEAD request for url answers 200 within the
// probe timeout.
func Resolves(ctx context.Context, client *http.Client, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}
