// Package idle ends the session after a period without user interaction.
package idle

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/billio/internal/logging"
)

// SessionStore is what the monitor needs from session.Store.
type SessionStore interface {
	IsAuthenticated() bool
	TouchActivity(ctx context.Context) error
	LastActivity(ctx context.Context) (time.Time, bool, error)
	Logout(ctx context.Context)
}

type State int

const (
	Active State = iota
	Expired
)

func (s State) String() string {
	if s == Expired {
		return "expired"
	}
	return "active"
}

// Monitor watches one session. Once Expired it stays Expired; a new login gets
// a new Monitor.
type Monitor struct {
	store SessionStore
	cfg   Config
	now   func() time.Time
	log   logging.Logger

	mu    sync.Mutex
	state State
}

type Option func(*Monitor)

func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

func NewMonitor(store SessionStore, cfg Config, opts ...Option) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Monitor{
		store: store,
		cfg:   cfg,
		now:   time.Now,
		log:   logging.Discard(),
	}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// UpdateActivity stamps the activity marker. It does nothing once the
// monitor has expired or while nobody is logged in.
func (m *Monitor) UpdateActivity(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Expired || !m.store.IsAuthenticated() {
		return nil
	}
	return m.store.TouchActivity(ctx)
}

// CheckTimeout compares the idle time against LogoutTime and logs the user
// out when it is reached. A missing marker counts as fresh activity. The
// logout happens at most once per monitor; expired reports whether the
// monitor is in the Expired state after the call.
func (m *Monitor) CheckTimeout(ctx context.Context) (expired bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Expired {
		return true, nil
	}
	if !m.store.IsAuthenticated() {
		return false, nil
	}

	last, ok, err := m.store.LastActivity(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, m.store.TouchActivity(ctx)
	}

	idle := m.now().Sub(last)
	if idle < m.cfg.LogoutTime {
		return false, nil
	}

	m.state = Expired
	m.log.Info(ctx, "session expired after inactivity", "idle", idle.Round(time.Second).String())
	m.store.Logout(ctx)
	return true, nil
}

// Run subscribes to events, checks once immediately and then every
// CheckInterval. It returns when ctx is done or the session expires; the
// subscription and the ticker are released on every return path.
func (m *Monitor) Run(ctx context.Context, events Source) {
	unsubscribe := events.Subscribe(func(EventKind) {
		if err := m.UpdateActivity(ctx); err != nil {
			m.log.Warn(ctx, "recording activity failed", "error", err)
		}
	})
	defer unsubscribe()

	ticker := time.NewTicker(m.cfg.CheckInterval)
	defer ticker.Stop()

	if m.check(ctx) {
		return
	}

	for {
		select {
		case <-ticker.C:
			if m.check(ctx) {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) check(ctx context.Context) bool {
	expired, err := m.CheckTimeout(ctx)
	if err != nil {
		m.log.Warn(ctx, "idle check failed", "error", err)
	}
	return expired
}
