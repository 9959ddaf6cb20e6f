package client

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/billio/internal/common"
	"github.com/dmitrijs2005/billio/internal/logging"
)

// TokenSource supplies the current bearer token and can tear the session
// down. session.Store implements it.
type TokenSource interface {
	Token() string
	ForceClear(ctx context.Context) error
}

// Navigator is the UI surface the pipeline redirects on session loss.
type Navigator interface {
	Location() string
	Navigate(to string)
}

// AuthTransport decorates every request with the current bearer token and
// ends the session when the API rejects that token.
//
// A 401 triggers teardown only when all of these hold: the request carried a
// token, it was not a login/register call, the navigator is not already on
// the login surface, and the rejected token is still the current one. Every
// response is returned to the caller unchanged; nothing is retried.
type AuthTransport struct {
	base   http.RoundTripper
	tokens TokenSource
	nav    Navigator
	log    logging.Logger

	mu sync.Mutex
}

type TransportOption func(*AuthTransport)

func WithTransportLogger(l logging.Logger) TransportOption {
	return func(t *AuthTransport) { t.log = l }
}

// NewAuthTransport wraps base (http.DefaultTransport when nil).
func NewAuthTransport(base http.RoundTripper, tokens TokenSource, nav Navigator, opts ...TransportOption) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	t := &AuthTransport{
		base:   base,
		tokens: tokens,
		nav:    nav,
		log:    logging.Discard(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.tokens.Token()

	out := req.Clone(req.Context())
	if token != "" {
		out.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}
	if out.Header.Get("Accept") == "" {
		out.Header.Set("Accept", "application/json")
	}
	if out.Header.Get(common.RequestIDHeaderName) == "" {
		out.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}
	if resp.Request == nil {
		resp.Request = out
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.handleRejected(out, token)
	}
	return resp, nil
}

func (t *AuthTransport) handleRejected(req *http.Request, token string) {
	ctx := req.Context()

	if token == "" || IsAuthPath(req.URL.Path) {
		return
	}
	if t.nav.Location() == common.LoginLocation {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tokens.Token() != token {
		return
	}

	t.log.Warn(ctx, "token rejected, ending session",
		"method", req.Method, "path", req.URL.Path, "request_id", req.Header.Get(common.RequestIDHeaderName))

	if err := t.tokens.ForceClear(context.WithoutCancel(ctx)); err != nil {
		t.log.Error(ctx, "clearing rejected session failed", "error", err)
	}
	t.nav.Navigate(common.LoginLocation)
}

// IsAuthPath reports whether path is the login or register endpoint. A 401
// there is a failed attempt, not a rejected session.
func IsAuthPath(path string) bool {
	return strings.HasSuffix(path, PathLogin) || strings.HasSuffix(path, PathRegister)
}
