// AngelaMos | 2026
// migrations.go

// Package migrations embeds the schema applied by tierctl and integration tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
