// Package migrations embeds the goose migrations for the client's local
// SQLite database.
package migrations

import "embed"

// Migrations holds the SQL files applied by client.RunMigrations.
//
//go:embed *.sql
var Migrations embed.FS
