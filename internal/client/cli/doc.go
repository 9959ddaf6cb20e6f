// Package cli provides the interactive Billio command-line client.
//
// It wires configuration, the local session database, the authenticated
// request pipeline, the API services and an interactive REPL. On start a
// persisted session is restored; while a session is active an inactivity
// monitor runs in the background and every line typed counts as activity.
//
// Key features:
//   - Register / Login / Logout / WhoAmI
//   - Dashboard overview and invoice, client, payment and notification lists
//   - Online/offline indicator driven by the API health probe
//
// The App doubles as the request pipeline's Navigator: its location is
// /login or /dashboard, and a rejected session moves it back to /login.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
