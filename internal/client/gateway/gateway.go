// Package gateway is the single path for outbound SmartShelf API calls. It
// attaches the session token, classifies failures and invalidates the
// session when the server rejects it.
package gateway

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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultTimeout = 30 * time.Second

	HeaderIdempotencyKey = "Idempotency-Key"
)

// Session is what the gateway needs from the session manager.
type Session interface {
	Token() (string, bool)
	Invalidate(reason string) bool
}

// Request describes one API call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any

	// Key groups requests for the same resource. A new request with a
	// non-empty Key cancels the one still in flight.
	Key string

	IdempotencyKey string

	// Anonymous suppresses the Authorization header.
	Anonymous bool
}

type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.http = c }
}

// WithTimeout sets the per-request timeout. It applies to a copy of the
// client, so a client passed through WithHTTPClient is left unchanged.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

type inflight struct {
	cancel     context.CancelFunc
	superseded bool
}

type Gateway struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	session Session
	log     zerolog.Logger

	mu       sync.Mutex
	inflight map[string]*inflight
}

func New(baseURL string, session Session, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:  strings.TrimRight(baseURL, "/"),
		session:  session,
		log:      zerolog.Nop(),
		inflight: make(map[string]*inflight),
	}
	for _, opt := range opts {
		opt(g)
	}
	switch {
	case g.http == nil:
		timeout := DefaultTimeout
		if g.timeout > 0 {
			timeout = g.timeout
		}
		g.http = &http.Client{Timeout: timeout}
	case g.timeout > 0:
		client := *g.http
		client.Timeout = g.timeout
		g.http = &client
	}
	return g
}

// NewIdempotencyKey returns a fresh key for a non-repeatable submission.
func NewIdempotencyKey() string {
	return uuid.NewString()
}

// Do sends req and decodes a 2xx JSON body into out when out is non-nil.
func (g *Gateway) Do(ctx context.Context, req Request, out any) error {
	ctx, entry, done := g.track(ctx, req.Key)
	defer done()

	httpReq, err := g.build(ctx, req)
	if err != nil {
		return &UnexpectedError{Err: err}
	}
	authenticated := httpReq.Header.Get("Authorization") != ""

	start := time.Now()
	resp, err := g.http.Do(httpReq)
	if err != nil {
		return g.transportError(ctx, entry, req, err)
	}
	defer resp.Body.Close()

	g.log.Debug().
		Str("method", httpReq.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseError(resp)
		if authenticated && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			g.session.Invalidate(fmt.Sprintf("server answered %d on %s %s", resp.StatusCode, httpReq.Method, req.Path))
			return fmt.Errorf("%w: %w", ErrSessionInvalidated, apiErr)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := g.cancelled(ctx, entry); ctxErr != nil {
			return ctxErr
		}
		return &UnexpectedError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (g *Gateway) build(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := g.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token, ok := g.session.Token(); ok && !req.Anonymous {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	if req.IdempotencyKey != "" {
		httpReq.Header.Set(HeaderIdempotencyKey, req.IdempotencyKey)
	}
	return httpReq, nil
}

// track registers a keyed request and cancels its predecessor.
func (g *Gateway) track(ctx context.Context, key string) (context.Context, *inflight, func()) {
	ctx, cancel := context.WithCancel(ctx)
	if key == "" {
		return ctx, nil, cancel
	}

	entry := &inflight{cancel: cancel}
	g.mu.Lock()
	if prev, ok := g.inflight[key]; ok {
		prev.superseded = true
		prev.cancel()
	}
	g.inflight[key] = entry
	g.mu.Unlock()

	return ctx, entry, func() {
		g.mu.Lock()
		if g.inflight[key] == entry {
			delete(g.inflight, key)
		}
		g.mu.Unlock()
		cancel()
	}
}

// cancelled reports why ctx ended, if it did.
func (g *Gateway) cancelled(ctx context.Context, entry *inflight) error {
	if ctx.Err() == nil {
		return nil
	}
	if entry != nil {
		g.mu.Lock()
		superseded := entry.superseded
		g.mu.Unlock()
		if superseded {
			return ErrSuperseded
		}
	}
	return ctx.Err()
}

func (g *Gateway) transportError(ctx context.Context, entry *inflight, req Request, err error) error {
	if ctxErr := g.cancelled(ctx, entry); ctxErr != nil {
		return ctxErr
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		g.log.Warn().Err(err).Str("path", req.Path).Msg("api unreachable")
		return &ConnectivityError{Err: err}
	}
	return &UnexpectedError{Err: err}
}

func parseError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: payload.Error}
		}
		if payload.Message != "" {
			return &APIError{Status: resp.StatusCode, Message: payload.Message}
		}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
