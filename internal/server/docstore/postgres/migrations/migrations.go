// Package migrations embeds the goose schema migrations of the postgres
// document store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
