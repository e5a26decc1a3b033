package storebot

import "embed"

// MigrationsFS carries the SQL migrations so the binary can run them on startup.
//
//go:embed migrations
var MigrationsFS embed.FS
