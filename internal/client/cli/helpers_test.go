package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/billio/internal/client/client"
	"github.com/dmitrijs2005/billio/internal/client/config"
	"github.com/dmitrijs2005/billio/internal/client/idle"
	"github.com/dmitrijs2005/billio/internal/client/models"
	"github.com/dmitrijs2005/billio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/billio/internal/client/services"
	"github.com/dmitrijs2005/billio/internal/client/session"
	"github.com/dmitrijs2005/billio/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	auth *client.AuthResult
	err  error

	invoices      []models.Invoice
	clients       []models.Client
	payments      []models.Payment
	notifications []models.Notification

	lastEmail      string
	lastPassword   []byte
	lastRememberMe bool
	lastName       string
}

func (f *fakeAPI) Close() error                   { return nil }
func (f *fakeAPI) Ping(ctx context.Context) error { return f.err }

func (f *fakeAPI) Login(ctx context.Context, email string, password []byte, rememberMe bool) (*client.AuthResult, error) {
	f.lastEmail, f.lastPassword, f.lastRememberMe = email, append([]byte(nil), password...), rememberMe
	return f.auth, f.err
}

func (f *fakeAPI) Register(ctx context.Context, name, email string, password []byte) (*client.AuthResult, error) {
	f.lastName, f.lastEmail = name, email
	return f.auth, f.err
}

func (f *fakeAPI) Invoices(ctx context.Context) ([]models.Invoice, error) { return f.invoices, f.err }
func (f *fakeAPI) Clients(ctx context.Context) ([]models.Client, error)   { return f.clients, f.err }
func (f *fakeAPI) Payments(ctx context.Context) ([]models.Payment, error) { return f.payments, f.err }
func (f *fakeAPI) Notifications(ctx context.Context) ([]models.Notification, error) {
	return f.notifications, f.err
}

var alice = models.User{ID: "u-1", Email: "alice@example.com", Name: "Alice"}

// newTestApp builds an App over an in-memory session database, the real
// services and a fake API.
func newTestApp(t *testing.T, api *fakeAPI) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewStore(metadata.NewSQLiteRepository(db))
	require.NoError(t, store.Initialize(ctx))

	cfg := &config.Config{}
	cfg.LoadDefaults()

	var out bytes.Buffer
	app := &App{
		config:      cfg,
		log:         logging.Discard(),
		store:       store,
		authService: services.NewAuthService(api, store),
		dashboard:   services.NewDashboardService(api, store),
		events:      idle.NewBus(),
		reader:      bufio.NewReader(&bytes.Buffer{}),
		out:         &out,
		location:    LocationLogin,
	}
	t.Cleanup(app.stopMonitor)
	return app, &out
}

// stubInputs feeds fixed answers to the interactive prompts.
func stubInputs(t *testing.T, texts []string, password []byte, remember bool) {
	t.Helper()
	origST, origGP, origGC := getSimpleText, getPassword, getConfirm
	t.Cleanup(func() {
		getSimpleText, getPassword, getConfirm = origST, origGP, origGC
	})

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		i++
		return texts[i-1], nil
	}
	getPassword = func(_ *bufio.Reader, _ io.Writer) ([]byte, error) { return password, nil }
	getConfirm = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) { return remember, nil }
}

func loginAs(t *testing.T, app *App, token string) {
	t.Helper()
	require.NoError(t, app.store.Login(context.Background(), token, alice, false))
	app.sessionStarted(context.Background())
}
