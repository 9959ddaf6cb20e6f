package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/billio/internal/client/session"
	"github.com/dmitrijs2005/billio/internal/common"
)

// Input indirections swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getConfirm    = GetConfirm
)

// Register prompts for a name, email and password, creates the account and
// starts its session.
//
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	a.sessionStarted(ctx)
	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", user.DisplayName())
	return nil
}

// Login prompts for credentials and authenticates. A failed attempt leaves
// the current session, if any, as it was.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rememberMe, err := getConfirm(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	user, err := a.authService.Login(ctx, email, password, rememberMe)
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		return err
	}

	a.sessionStarted(ctx)
	a.log.Info(ctx, "login successful", "user", user.Email)
	fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName())
	return nil
}

func (a *App) sessionStarted(ctx context.Context) {
	// a stale redirect from an earlier logout must not bounce the new session
	a.store.ConsumeRedirect()
	a.Navigate(LocationDashboard)
	a.startMonitor(ctx)
}

// Logout ends the session and returns to the login surface.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotLoggedIn
	}

	a.stopMonitor()
	a.authService.Logout(ctx)
	a.store.ConsumeRedirect()
	a.Navigate(LocationLogin)

	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the signed-in user and, for JWT tokens, when the token
// expires.
func (a *App) WhoAmI(ctx context.Context) error {
	user, ok := a.store.User()
	if !ok {
		return common.ErrNotLoggedIn
	}

	fmt.Fprintf(a.out, "Name:        %s\n", user.DisplayName())
	fmt.Fprintf(a.out, "Email:       %s\n", user.Email)
	fmt.Fprintf(a.out, "ID:          %s\n", user.ID)
	fmt.Fprintf(a.out, "Remember me: %t\n", a.store.RememberMe())

	if exp, ok := session.TokenExpiry(a.store.Token()); ok {
		fmt.Fprintf(a.out, "Token:       expires %s (%s)\n", exp.Local().Format(time.DateTime), humanize.Time(exp))
	}
	return nil
}
