// Package migrations embeds the SQL schema so the binary can migrate without the source tree.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
