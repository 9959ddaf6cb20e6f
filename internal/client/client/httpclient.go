package client

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

	"github.com/dmitrijs2005/billio/internal/client/models"
	"github.com/dmitrijs2005/billio/internal/common"
	"github.com/dmitrijs2005/billio/internal/logging"
)

const (
	PathLogin         = "/auth/login"
	PathRegister      = "/auth/register"
	PathHealth        = "/health"
	PathInvoices      = "/invoices"
	PathClients       = "/clients"
	PathPayments      = "/payments"
	PathNotifications = "/notifications"
)

// maxErrorBody bounds how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// HTTPClient talks JSON to the Billio REST API. Authentication is the job of
// the transport it is built with, normally an AuthTransport.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

type HTTPOption func(*HTTPClient)

func WithHTTPLogger(l logging.Logger) HTTPOption {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, transport http.RoundTripper, timeout time.Duration, opts ...HTTPOption) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Transport: transport, Timeout: timeout},
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte, rememberMe bool) (*AuthResult, error) {
	var res AuthResult
	body := loginRequest{Email: email, Password: string(password), RememberMe: rememberMe}
	if err := c.do(ctx, http.MethodPost, PathLogin, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) (*AuthResult, error) {
	var res AuthResult
	body := registerRequest{Name: name, Email: email, Password: string(password)}
	if err := c.do(ctx, http.MethodPost, PathRegister, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, PathHealth, nil, nil)
}

func (c *HTTPClient) Invoices(ctx context.Context) ([]models.Invoice, error) {
	return getList[models.Invoice](ctx, c, PathInvoices)
}

func (c *HTTPClient) Clients(ctx context.Context) ([]models.Client, error) {
	return getList[models.Client](ctx, c, PathClients)
}

func (c *HTTPClient) Payments(ctx context.Context) ([]models.Payment, error) {
	return getList[models.Payment](ctx, c, PathPayments)
}

func (c *HTTPClient) Notifications(ctx context.Context) ([]models.Notification, error) {
	return getList[models.Notification](ctx, c, PathNotifications)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func getList[T any](ctx context.Context, c *HTTPClient, path string) ([]T, error) {
	var res listResponse[T]
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return []T{}, nil
	}
	return res.Data, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api call", "method", method, "path", path, "status", resp.StatusCode)

	if err := c.mapStatus(resp); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) mapStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := readErrorMessage(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// resp.Request is the request the transport actually sent
		if sent := resp.Request; sent != nil && sent.Header.Get(common.AuthorizationHeaderName) != "" &&
			!IsAuthPath(sent.URL.Path) {
			return fmt.Errorf("%w: %w", ErrUnauthorized, ErrSessionExpired)
		}
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %w", ErrUnavailable, &APIError{Status: resp.StatusCode, Message: msg})
	default:
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil {
		if er.Message != "" {
			return er.Message
		}
		return er.Error
	}
	return strings.TrimSpace(string(raw))
}
