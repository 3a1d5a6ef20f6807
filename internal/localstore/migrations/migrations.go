// Package migrations embeds the local SQLite schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
