// Package migrations embeds the activity log schema for goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
