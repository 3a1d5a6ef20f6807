// Package migrations embeds the remote PostgreSQL schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
