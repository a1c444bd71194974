// Package catalog provides the remote camper catalog sources.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/logging"
	"github.com/traveltrucks/traveltrucks/internal/ports"
)

var (
	// ErrNotConfigured indicates that no catalog base URL was configured.
	ErrNotConfigured = errors.New("catalog api_base_url is not configured")
	// ErrNotFound indicates that the requested camper does not exist.
	ErrNotFound = errors.New("camper not found")
	// ErrInvalidID indicates an empty camper id.
	ErrInvalidID = errors.New("invalid camper id")
)

const (
	defaultTimeout   = 15 * time.Second
	defaultBaseDelay = 250 * time.Millisecond
	maxErrorBody     = 200
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Code, msg)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Options configures an HTTPSource.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond int
	MaxRetries    int
	// BaseDelay is the first back-off delay; it doubles on every retry.
	BaseDelay time.Duration
	// Transport is wrapped with otelhttp. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// HTTPSource fetches campers from the remote catalog API.
type HTTPSource struct {
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
}

var _ ports.CatalogSource = (*HTTPSource)(nil)

// NewHTTPSource creates an HTTPSource from opts.
func NewHTTPSource(opts Options) *HTTPSource {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	limit := rate.Inf
	burst := 1
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
		burst = opts.RatePerSecond
	}
	delay := opts.BaseDelay
	if delay <= 0 {
		delay = defaultBaseDelay
	}
	retries := opts.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(base),
		},
		limiter:    rate.NewLimiter(limit, burst),
		maxRetries: retries,
		baseDelay:  delay,
	}
}

// ListCampers fetches the whole catalog. The endpoint may answer either
// {"total": n, "items": [...]} or a bare array.
func (s *HTTPSource) ListCampers(ctx context.Context) (domain.ListResponse, error) {
	body, err := s.get(ctx, "/campers")
	if err != nil {
		return domain.ListResponse{}, err
	}
	resp, err := DecodeList(body)
	if err != nil {
		return domain.ListResponse{}, fmt.Errorf("decode campers: %w", err)
	}
	return resp, nil
}

// GetCamper fetches a single camper by id.
func (s *HTTPSource) GetCamper(ctx context.Context, id string) (domain.Listing, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Listing{}, ErrInvalidID
	}
	body, err := s.get(ctx, "/campers/"+url.PathEscape(id))
	if err != nil {
		return domain.Listing{}, err
	}
	var l domain.Listing
	if err := json.Unmarshal(body, &l); err != nil {
		return domain.Listing{}, fmt.Errorf("decode camper %s: %w", id, err)
	}
	return l, nil
}

func (s *HTTPSource) get(ctx context.Context, path string) ([]byte, error) {
	if s.baseURL == "" {
		return nil, ErrNotConfigured
	}
	target := s.baseURL + path
	log := logging.With("url", target)

	var lastErr error
	delay := s.baseDelay
	attempts := s.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		body, err := s.do(ctx, target)
		if err == nil {
			log.Debug("catalog request succeeded", "attempt", attempt)
			return body, nil
		}
		lastErr = err
		if !retryable(ctx, err) || attempt == attempts {
			break
		}
		log.Warn("catalog request failed, retrying", "attempt", attempt, "delay", delay.String(), "error", err.Error())
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, lastErr
}

func (s *HTTPSource) do(ctx context.Context, target string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}
	return body, nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	}
	return true
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// DecodeList decodes a list payload in either the object or the bare array
// form. Items is never nil.
func DecodeList(data []byte) (domain.ListResponse, error) {
	trimmed := bytes.TrimSpace(data)
	var resp domain.ListResponse
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &resp.Items); err != nil {
			return domain.ListResponse{}, err
		}
	} else if err := json.Unmarshal(trimmed, &resp); err != nil {
		return domain.ListResponse{}, err
	}
	if resp.Items == nil {
		resp.Items = []domain.Listing{}
	}
	if resp.Total == 0 {
		resp.Total = len(resp.Items)
	}
	return resp, nil
}
