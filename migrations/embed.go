// Package migrations embeds the goose SQL migrations so the publish command
// can apply them without a checkout of this repository.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
