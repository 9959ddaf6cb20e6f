package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/billio/internal/client/idle"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	activity(kind idle.EventKind)
	settle(ctx context.Context)
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Invoices(ctx context.Context) error
	Clients(ctx context.Context) error
	Payments(ctx context.Context) error
	Notifications(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Billio CLI.
//
// Every line read is a KeyPress and every dispatched command a Click for
// the inactivity monitor.
// Background session changes are applied before each prompt and again before
// the command runs. The loop exits on scanner EOF, when ctx is done or when
// the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help           - show available commands
//	  - register       - create an account
//	  - login          - authenticate
//	  - exit | quit    - leave the program
//
//	Logged in:
//	  - help           - show available commands
//	  - dashboard      - totals and per-status counts
//	  - invoices, clients, payments, notifications - list records
//	  - whoami         - show the signed-in user
//	  - logout         - log out
//	  - exit | quit    - leave the program
//
// Prompts, help and errors go to out, the same writer the handlers print to.
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	for {
		a.settle(ctx)
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(out, "billio %s> \n", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		a.activity(idle.KeyPress)
		a.settle(ctx)

		cmd := parts[0]

		var err error
		dispatched := true
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: dashboard, invoices, clients, payments, notifications, whoami, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "d", "dashboard":
			err = a.Dashboard(ctx)

		case "invoices":
			err = a.Invoices(ctx)

		case "clients":
			err = a.Clients(ctx)

		case "payments":
			err = a.Payments(ctx)

		case "notifications":
			err = a.Notifications(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			dispatched = false
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if dispatched {
			a.activity(idle.Click)
		}
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}
}
