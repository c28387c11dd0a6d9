package db

import "embed"

// MigrationFS embeds the SQL migration files so the binary can bring its
// own schema up without external tooling.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
