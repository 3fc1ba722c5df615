// Package migrations embeds the tag store schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
