// Package migrations embeds the SQL schema migrations applied at
// startup, in lexical order.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
