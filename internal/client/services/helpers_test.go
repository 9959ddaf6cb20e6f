package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/billio/internal/client/client"
	"github.com/dmitrijs2005/billio/internal/client/models"
	"github.com/dmitrijs2005/billio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/billio/internal/client/session"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupStore(t *testing.T) (*session.Store, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewStore(metadata.NewSQLiteRepository(db))
	require.NoError(t, store.Initialize(context.Background()))
	return store, db
}

func countMeta(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata WHERE key <> 'lastActivity'`).Scan(&n))
	return n
}

// ---- fake client ----

type fakeClient struct {
	CloseErr error
	PingErr  error

	LoginRet    *client.AuthResult
	LoginErr    error
	RegisterRet *client.AuthResult
	RegisterErr error

	InvoicesRet      []models.Invoice
	InvoicesErr      error
	ClientsRet       []models.Client
	PaymentsRet      []models.Payment
	NotificationsRet []models.Notification

	LastLoginEmail    string
	LastLoginPassword []byte
	LastRememberMe    bool
	LastRegisterName  string
	LastRegisterEmail string

	Calls int
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Login(ctx context.Context, email string, password []byte, rememberMe bool) (*client.AuthResult, error) {
	f.Calls++
	f.LastLoginEmail = email
	f.LastLoginPassword = append([]byte(nil), password...)
	f.LastRememberMe = rememberMe
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, name, email string, password []byte) (*client.AuthResult, error) {
	f.Calls++
	f.LastRegisterName = name
	f.LastRegisterEmail = email
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Invoices(ctx context.Context) ([]models.Invoice, error) {
	f.Calls++
	return f.InvoicesRet, f.InvoicesErr
}

func (f *fakeClient) Clients(ctx context.Context) ([]models.Client, error) {
	f.Calls++
	return f.ClientsRet, nil
}

func (f *fakeClient) Payments(ctx context.Context) ([]models.Payment, error) {
	f.Calls++
	return f.PaymentsRet, nil
}

func (f *fakeClient) Notifications(ctx context.Context) ([]models.Notification, error) {
	f.Calls++
	return f.NotificationsRet, nil
}

var alice = models.User{ID: "u-1", Email: "alice@example.com", Name: "Alice"}

// newStoreOn simulates a restart: a fresh store over an existing database.
func newStoreOn(t *testing.T, db *sql.DB) *session.Store {
	t.Helper()
	return session.NewStore(metadata.NewSQLiteRepository(db))
}
