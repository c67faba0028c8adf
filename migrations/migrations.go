// Package migrations embeds the SQL schema migrations so the server
// binary carries its own schema and never depends on a migrations
// directory existing at the deploy target.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
