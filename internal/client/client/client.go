package client

import (
	"context"

	"github.com/dmitrijs2005/billio/internal/client/models"
)

// AuthResult is the payload of the login and register endpoints.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type Client interface {
	Close() error
	Login(ctx context.Context, email string, password []byte, rememberMe bool) (*AuthResult, error)
	Register(ctx context.Context, name, email string, password []byte) (*AuthResult, error)
	Ping(ctx context.Context) error
	Invoices(ctx context.Context) ([]models.Invoice, error)
	Clients(ctx context.Context) ([]models.Client, error)
	Payments(ctx context.Context) ([]models.Payment, error)
	Notifications(ctx context.Context) ([]models.Notification, error)
}
