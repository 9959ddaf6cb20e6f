package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/billio/internal/client/idle"
)

// startMonitor replaces any running inactivity monitor with a fresh one for
// the current session.
func (a *App) startMonitor(ctx context.Context) {
	a.stopMonitor()

	m, err := idle.NewMonitor(a.store, a.config.Idle(), idle.WithLogger(a.log))
	if err != nil {
		a.log.Error(ctx, "starting inactivity monitor failed", "error", err)
		return
	}

	mctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(mctx, a.events)
	}()

	a.mu.Lock()
	a.monitorCancel, a.monitorDone = cancel, done
	a.mu.Unlock()
}

func (a *App) stopMonitor() {
	a.mu.Lock()
	cancel, done := a.monitorCancel, a.monitorDone
	a.monitorCancel, a.monitorDone = nil, nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// activity forwards a user interaction to the monitor.
func (a *App) activity(kind idle.EventKind) {
	a.events.Publish(kind)
}

// settle applies what happened in the background since the last command:
// a pending navigation from a logout, or a session torn down by the request
// pipeline. The monitor is stopped once no session is left.
func (a *App) settle(ctx context.Context) {
	if to, ok := a.store.ConsumeRedirect(); ok {
		a.Navigate(to)
		fmt.Fprintln(a.out, "Your session has ended. Please log in again.")
	}

	if a.isLoggedIn() {
		return
	}
	a.stopMonitor()
	if a.Location() != LocationLogin {
		a.Navigate(LocationLogin)
		fmt.Fprintln(a.out, "Your session is no longer valid. Please log in again.")
	}
}
