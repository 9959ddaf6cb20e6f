// Package services contains application services for the Billio client.
// This file defines the authentication service: login, registration, logout,
// session restore and the liveness probe.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/billio/internal/client/client"
	"github.com/dmitrijs2005/billio/internal/client/models"
)

var ErrMissingCredentials = errors.New("email and password are required")

// SessionStore is the part of session.Store the services rely on.
type SessionStore interface {
	Initialize(ctx context.Context) error
	Login(ctx context.Context, token string, user models.User, rememberMe bool) error
	Logout(ctx context.Context)
	IsAuthenticated() bool
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Restore: load a persisted session, if any, at startup.
//   - Login: authenticate against the server and persist the session.
//   - Register: create an account on the server and start its session.
//   - Logout: end the session locally.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, email string, password []byte, rememberMe bool) (models.User, error)
	Register(ctx context.Context, name, email string, password []byte) (models.User, error)
	Logout(ctx context.Context)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  SessionStore
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(client client.Client, store SessionStore) AuthService {
	return &authService{client: client, store: store}
}

func (a *authService) Restore(ctx context.Context) error {
	return a.store.Initialize(ctx)
}

// Login exchanges credentials for a token and stores the session. When the
// server rejects the credentials any current session is left untouched. A
// reply the store refuses (session.ErrInvalidCredential) or fails to save
// ends the current session.
func (a *authService) Login(ctx context.Context, email string, password []byte, rememberMe bool) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return models.User{}, ErrMissingCredentials
	}

	res, err := a.client.Login(ctx, email, password, rememberMe)
	if err != nil {
		return models.User{}, fmt.Errorf("login error: %w", err)
	}

	if err := a.store.Login(ctx, res.Token, res.User, rememberMe); err != nil {
		return models.User{}, fmt.Errorf("session saving error: %w", err)
	}
	return res.User, nil
}

// Register creates the account and logs it in with the returned token.
// Registration never sets rememberMe.
func (a *authService) Register(ctx context.Context, name, email string, password []byte) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return models.User{}, ErrMissingCredentials
	}

	res, err := a.client.Register(ctx, strings.TrimSpace(name), email, password)
	if err != nil {
		return models.User{}, fmt.Errorf("register error: %w", err)
	}

	if err := a.store.Login(ctx, res.Token, res.User, false); err != nil {
		return models.User{}, fmt.Errorf("session saving error: %w", err)
	}
	return res.User, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.store.Logout(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
