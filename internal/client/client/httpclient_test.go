package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/billio/internal/client/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc, tokens *fakeTokens) (*HTTPClient, *fakeNav) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	nav := &fakeNav{location: "/dashboard"}
	c, err := NewHTTPClient(srv.URL+"/api/", NewAuthTransport(nil, tokens, nav), 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, nav
}

func TestNewHTTPClient_RejectsBadBaseURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com", nil, time.Second)
	require.Error(t, err)

	_, err = NewHTTPClient("://nope", nil, time.Second)
	require.Error(t, err)
}

func TestLogin_SendsCredentialsAndDecodesResult(t *testing.T) {
	var got loginRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"token":"tok-9","user":{"id":"u-1","email":"ada@example.com","name":"Ada"}}`)
	}, &fakeTokens{})

	res, err := c.Login(context.Background(), "ada@example.com", []byte("pw"), true)
	require.NoError(t, err)

	assert.Equal(t, loginRequest{Email: "ada@example.com", Password: "pw", RememberMe: true}, got)
	assert.Equal(t, "tok-9", res.Token)
	assert.Equal(t, models.User{ID: "u-1", Email: "ada@example.com", Name: "Ada"}, res.User)
}

func TestLogin_WrongPassword_IsUnauthorizedButNotExpired(t *testing.T) {
	c, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"invalid email or password"}`)
	}, &fakeTokens{})

	_, err := c.Login(context.Background(), "a@b.c", []byte("bad"), false)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.NotErrorIs(t, err, ErrSessionExpired)
	assert.Contains(t, err.Error(), "invalid email or password")
	assert.Empty(t, nav.visits)
}

func TestLogin_WrongPasswordWhileLoggedIn_KeepsServerMessage(t *testing.T) {
	tokens := &fakeTokens{token: "tokA"}
	c, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"invalid email or password"}`)
	}, tokens)

	_, err := c.Login(context.Background(), "a@b.c", []byte("bad"), false)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.NotErrorIs(t, err, ErrSessionExpired)
	assert.Contains(t, err.Error(), "invalid email or password")

	assert.Equal(t, "tokA", tokens.Token())
	assert.Zero(t, tokens.clears)
	assert.Empty(t, nav.visits)
}

func TestRegister_PostsBody(t *testing.T) {
	var got registerRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"token":"t","user":{"id":"2","email":"b@c.d"}}`)
	}, &fakeTokens{})

	res, err := c.Register(context.Background(), "Bea", "b@c.d", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, registerRequest{Name: "Bea", Email: "b@c.d", Password: "pw"}, got)
	assert.Equal(t, "2", res.User.ID)
}

func TestInvoices_DecodesEnvelopeWithBearer(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/invoices", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"data":[{"id":"i1","number":"INV-1","amount":1500,"currency":"USD","status":"paid"}]}`)
	}, &fakeTokens{token: "tok"})

	got, err := c.Invoices(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "INV-1", got[0].Number)
	assert.Equal(t, int64(1500), got[0].Amount)
	assert.Equal(t, models.InvoiceStatusPaid, got[0].Status)
}

func TestLists_EmptyDataIsEmptySlice(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}, &fakeTokens{token: "tok"})
	ctx := context.Background()

	clients, err := c.Clients(ctx)
	require.NoError(t, err)
	assert.NotNil(t, clients)
	assert.Empty(t, clients)

	payments, err := c.Payments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)

	notes, err := c.Notifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestExpiredToken_TearsDownAndReportsExpiry(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	c, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, tokens)

	_, err := c.Payments(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, tokens.clears)
	assert.Equal(t, []string{"/login"}, nav.visits)
}

func TestServerError_IsUnavailableWithAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	}, &fakeTokens{token: "tok"})

	_, err := c.Invoices(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.Message)
}

func TestClientError_IsAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"error":"email taken"}`)
	}, &fakeTokens{})

	_, err := c.Register(context.Background(), "n", "e@x", []byte("p"))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "email taken", apiErr.Message)
	assert.Equal(t, "api error: status 422: email taken", apiErr.Error())
	require.NotErrorIs(t, err, ErrUnavailable)
}

func TestPing(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}, &fakeTokens{})

	require.NoError(t, c.Ping(context.Background()))
}

func TestPing_DialFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, NewAuthTransport(nil, &fakeTokens{}, &fakeNav{}), time.Second)
	require.NoError(t, err)

	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestCanceledContextIsReturnedAsIs(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, &fakeTokens{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Ping(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrUnavailable)
}

func TestDecodeError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[`)
	}, &fakeTokens{token: "t"})

	_, err := c.Invoices(context.Background())
	require.ErrorContains(t, err, "decode /invoices response")
}
