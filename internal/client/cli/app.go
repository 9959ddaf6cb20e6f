package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/billio/internal/client/client"
	"github.com/dmitrijs2005/billio/internal/client/config"
	"github.com/dmitrijs2005/billio/internal/client/idle"
	"github.com/dmitrijs2005/billio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/billio/internal/client/services"
	"github.com/dmitrijs2005/billio/internal/client/session"
	"github.com/dmitrijs2005/billio/internal/filex"
	"github.com/dmitrijs2005/billio/internal/logging"

	_ "modernc.org/sqlite"
)

// DatabaseFile is the name of the session database inside the data dir.
const DatabaseFile = "session.db"

// OnlineCheckInterval is how often the API health endpoint is probed.
const OnlineCheckInterval = 30 * time.Second

// Locations the REPL can be at.
const (
	LocationLogin     = session.LoginLocation
	LocationDashboard = "/dashboard"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	store       *session.Store
	authService services.AuthService
	dashboard   services.DashboardService
	events      *idle.Bus
	reader      *bufio.Reader
	out         io.Writer

	mu       sync.Mutex
	location string
	mode     Mode

	monitorCancel context.CancelFunc
	monitorDone   chan struct{}
}

// NewApp opens the session database under cfg.DataDir and wires the request
// pipeline, the API client and the services around it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := cfg.Idle().Validate(); err != nil {
		return nil, err
	}

	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, DatabaseFile))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewStore(metadata.NewSQLiteRepository(db), session.WithLogger(log))

	app := &App{
		config:   cfg,
		log:      log,
		db:       db,
		store:    store,
		events:   idle.NewBus(),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		location: LocationLogin,
	}

	transport := client.NewAuthTransport(http.DefaultTransport, store, app, client.WithTransportLogger(log))
	apiClient, err := client.NewHTTPClient(cfg.APIBaseURL, transport, cfg.RequestTimeout, client.WithHTTPLogger(log))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app.authService = services.NewAuthService(apiClient, store)
	app.dashboard = services.NewDashboardService(apiClient, store)
	return app, nil
}

// Location implements client.Navigator.
func (a *App) Location() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location
}

// Navigate implements client.Navigator.
func (a *App) Navigate(to string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.location = to
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

// Run restores a persisted session and blocks in the REPL until the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	if err := a.authService.Restore(ctx); err != nil {
		a.log.Error(ctx, "restoring session failed", "error", err)
	}
	if a.isLoggedIn() {
		a.Navigate(LocationDashboard)
		a.startMonitor(ctx)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, OnlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to Billio CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader), a.out)
}

func (a *App) close(ctx context.Context) {
	a.stopMonitor()
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "closing api client failed", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "closing database failed", "error", err)
		}
	}
}

// StartOnlineStatusWatcher pings the API on every tick and flips the mode
// shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	probe := func() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		if err := a.authService.Ping(pctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			a.setMode(ModeOffline)
			return
		}
		a.setMode(ModeOnline)
	}

	probe()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probe()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if user, ok := a.store.User(); ok {
		s = user.DisplayName() + " "
	}
	if mode := a.getMode(); mode != "" {
		s += string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s) ", s)
	}
	return s + a.Location()
}
