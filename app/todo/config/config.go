package config

import (
	"fmt"

	"github.com/jrazmi/todolist/core/repositories/tasksrepo/stores/tasksfilestore"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/sdk/environment"
)

// Storage backends.
const (
	StoreFile     = "file"
	StorePostgres = "pg"
)

// Todo is the overall configuration for the todo application.
type Todo struct {
	Build    string
	Store    string `env:"STORE" default:"file"`
	File     tasksfilestore.Options
	Postgres postgresdb.Options
}

// Load reads the configuration from environment variables under prefix, for
// example TODO_STORE, TODO_FILE_PATH and TODO_PG_DATABASE_URL.
func Load(prefix, build string) (Todo, error) {
	cfg := Todo{Build: build}

	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return Todo{}, fmt.Errorf("parsing app config: %w", err)
	}
	if err := environment.ParseEnvTags(prefix, &cfg.File); err != nil {
		return Todo{}, fmt.Errorf("parsing file store config: %w", err)
	}
	if err := environment.ParseEnvTags(prefix, &cfg.Postgres); err != nil {
		return Todo{}, fmt.Errorf("parsing database config: %w", err)
	}

	switch cfg.Store {
	case StoreFile, StorePostgres:
	default:
		return Todo{}, fmt.Errorf("unknown store %q: want %q or %q", cfg.Store, StoreFile, StorePostgres)
	}

	return cfg, nil
}
