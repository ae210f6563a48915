package pgdb

import "embed"

// MigrationsFS holds the goose migrations of the documents schema.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir is the directory of the migrations within MigrationsFS.
const MigrationsDir = "migrations"
