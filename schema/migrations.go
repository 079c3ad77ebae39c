// Package schema contains embedded migration files.
package schema

import "embed"

// MigrationsDir is the directory inside MigrationsFS holding the SQL files.
const MigrationsDir = "pgmigrations"

// MigrationsFS contains all SQL migration files from pgmigrations directory.
//
//go:embed pgmigrations/*.sql
var MigrationsFS embed.FS
