package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flexirent/flexirent-client/config"
)

// TokenSource yields the current bearer credential, if any. The session
// store implements it; the gateway never persists or mutates the
// credential itself.
type TokenSource interface {
	Token() (string, bool)
}

// Gateway is the single chokepoint for outbound requests: it attaches the
// credential, dispatches, normalizes failures into *Error, and runs the
// session-teardown hook on authorization failures.
type Gateway struct {
	baseURL        string
	client         *http.Client
	tokens         TokenSource
	onUnauthorized func()
	log            *logrus.Logger
}

type Option func(*Gateway)

func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		g.client = client
	}
}

// WithOnUnauthorized installs the hook run after every 401 response,
// before the error is surfaced to the caller. The hook must be idempotent:
// concurrent failing requests each trigger it.
func WithOnUnauthorized(hook func()) Option {
	return func(g *Gateway) {
		g.onUnauthorized = hook
	}
}

func New(cfg config.APIConfig, tokens TokenSource, log *logrus.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		tokens:  tokens,
		log:     log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Send issues one request against the configured base address. A non-nil
// body is sent as JSON; a non-nil out receives the decoded response. Every
// failure comes back as *Error.
func (g *Gateway) Send(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Message: fmt.Sprintf("encode request body: %v", err)}
		}
		payload = bytes.NewReader(data)
	}

	endpoint := g.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return &Error{Kind: KindValidation, Message: fmt.Sprintf("build request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token, ok := g.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	entry := g.log.WithFields(logrus.Fields{
		"request_id": req.Header.Get("X-Request-ID"),
		"method":     method,
		"path":       path,
	})

	resp, err := g.client.Do(req)
	if err != nil {
		entry.WithError(err).Warn("request failed before a response arrived")
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		entry.WithError(err).Warn("reading response body failed")
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}

	entry = entry.WithField("status", resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		entry.Debug("request completed")
		if out == nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Kind: KindServer, Message: fmt.Sprintf("decode response: %v", err), HTTPStatus: resp.StatusCode}
		}
		return nil
	}

	kind, teardown := Classify(resp.StatusCode)
	if teardown && g.onUnauthorized != nil {
		entry.Info("authorization failure, tearing down session")
		g.onUnauthorized()
	}

	msg := errorMessage(raw)
	entry.WithField("kind", kind).Warn(msg)
	return &Error{Kind: kind, Message: msg, HTTPStatus: resp.StatusCode}
}

// errorMessage digs a human-readable message out of a failure body. The
// remote sometimes answers {"error": ...} or {"message": ...} and
// sometimes plain text.
func errorMessage(raw []byte) string {
	var wrapper struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil {
		if wrapper.Error != "" {
			return wrapper.Error
		}
		if wrapper.Message != "" {
			return wrapper.Message
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return "request failed"
}
