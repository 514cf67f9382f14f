package store

import "embed"

// migrationsFS embeds the schema migrations golang-migrate applies on
// Open, so the binary carries its own schema instead of depending on a
// migrations directory existing on disk next to it.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS
