package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
	"github.com/google/uuid"
)

// TokenSource supplies the bearer token attached to outgoing requests. An
// empty token means the Authorization header is omitted entirely.
type TokenSource interface {
	Token() string
}

// Notifier receives the user-facing error messages the gateway emits
// centrally, so individual call sites never need their own generic error UI.
type Notifier interface {
	Error(message string)
}

// Gateway is the single chokepoint every network call passes through: it
// signs requests, raises the process-wide loading signal around them, and
// translates error responses into notifications. It adds no timeout and
// never retries; both are the caller's business.
type Gateway struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	notifier  Notifier
	debug     *log.Logger
	userAgent string

	inflight atomic.Int64

	latencyMu   sync.Mutex
	latency     *movingaverage.MovingAverage
	latencySeen bool
}

const (
	defaultAPIBind   = "127.0.0.1:8780"
	defaultUserAgent = "fleetdeck/0.1"
	latencySamples   = 20
)

// NewGateway builds a Gateway from the configured host:port or URL.
func NewGateway(apiBind string, tokens TokenSource, notifier Notifier, debug *log.Logger) (*Gateway, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Gateway{
		baseURL:   base,
		http:      &http.Client{},
		tokens:    tokens,
		notifier:  notifier,
		debug:     debug,
		userAgent: defaultUserAgent,
		latency:   movingaverage.New(latencySamples),
	}, nil
}

// InFlight returns the number of tracked requests currently outstanding.
func (g *Gateway) InFlight() int {
	return int(g.inflight.Load())
}

// Busy reports whether any tracked request is in flight. The global
// progress indicator renders off this.
func (g *Gateway) Busy() bool {
	return g.inflight.Load() > 0
}

// AverageLatency returns the rolling average duration of recent requests,
// zero until the first completes.
func (g *Gateway) AverageLatency() time.Duration {
	g.latencyMu.Lock()
	defer g.latencyMu.Unlock()
	if !g.latencySeen {
		return 0
	}
	return time.Duration(g.latency.Avg() * float64(time.Millisecond))
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendOption adjusts how a single Send call handles failure.
type SendOption func(*sendBehavior)

type sendBehavior struct {
	quietStatuses []int
}

func (b sendBehavior) quiet(status int) bool {
	for _, s := range b.quietStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// QuietStatus suppresses the central error notification for responses
// carrying one of the given HTTP statuses. The typed error is still
// returned; callers pass this when a failure is an expected outcome they
// surface themselves, like a delete racing another operator's delete.
func QuietStatus(statuses ...int) SendOption {
	return func(b *sendBehavior) {
		b.quietStatuses = append(b.quietStatuses, statuses...)
	}
}

// Send dispatches one request. body, when non-nil, is marshaled as the JSON
// request body; dest, when non-nil, receives the decoded success payload.
// Any failure has already been surfaced to the user as a notification by the
// time Send returns, unless an option marked its status as expected; the
// error itself is for caller flow control.
func (g *Gateway) Send(ctx context.Context, method string, rel *url.URL, body, dest any, opts ...SendOption) error {
	var behavior sendBehavior
	for _, opt := range opts {
		opt(&behavior)
	}
	g.inflight.Add(1)
	started := time.Now()
	defer func() {
		// The loading signal must drop even on the error paths, or the
		// progress indicator sticks.
		g.recordLatency(time.Since(started))
		g.inflight.Add(-1)
	}()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	reqURL := g.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.tokens != nil {
		if token := g.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.http.Do(req)
	if err != nil {
		// Network-level failures carry no error code; same path, generic
		// message.
		g.notifyError("")
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return g.failFromResponse(rel, resp, behavior)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		// Malformed server payloads are a developer problem surfaced in the
		// debug log; the user just sees the generic notification.
		g.debugf("malformed payload from %s: %v", rel.String(), err)
		g.notifyError("")
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// failFromResponse extracts the structured error code, emits the mapped (or
// generic) notification unless the caller expects this status, and returns
// the typed failure.
func (g *Gateway) failFromResponse(rel *url.URL, resp *http.Response, behavior sendBehavior) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: GenericErrorMessage}

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Code
		if message, ok := MessageFor(envelope.Code); ok {
			apiErr.Message = message
		}
	}
	g.debugf("api %s returned status %d code %q", rel.String(), resp.StatusCode, apiErr.Code)
	if !behavior.quiet(resp.StatusCode) {
		g.notifyError(apiErr.Message)
	}
	return apiErr
}

func (g *Gateway) notifyError(message string) {
	if g.notifier == nil {
		return
	}
	if message == "" {
		message = GenericErrorMessage
	}
	g.notifier.Error(message)
}

func (g *Gateway) recordLatency(d time.Duration) {
	g.latencyMu.Lock()
	defer g.latencyMu.Unlock()
	g.latency.Add(float64(d) / float64(time.Millisecond))
	g.latencySeen = true
}

func (g *Gateway) debugf(format string, args ...any) {
	if g.debug != nil {
		g.debug.Printf(format, args...)
	}
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api address %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
