// Package migrations embeds the SQL migrations applied by the schema guard.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
