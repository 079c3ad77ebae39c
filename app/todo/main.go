package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/jrazmi/todolist/app/todo/commands"
	"github.com/jrazmi/todolist/app/todo/config"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo/stores/tasksfilestore"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/sdk/environment"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/telemetry"
)

var build = "develop"
var appName = "TODO"

func main() {
	environment.LoadEnv()

	// stdout carries the task list, so only warnings are logged unless
	// TODO_LOG_LEVEL asks for more.
	level := environment.GetPrefixEnvOrDefault(appName, "LOG_LEVEL", "WARN")
	log, err := logger.NewFromEnv(appName, logger.WithLevel(level), logger.WithTraceIDFn(telemetry.GetTraceID))
	if err != nil {
		fmt.Fprintln(os.Stderr, "oh no we couldn't even get logging going.")
		os.Exit(1)
	}
	ctx := telemetry.SetTraceID(context.Background())

	code, err := run(ctx, log, os.Args[1:])
	if err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func run(ctx context.Context, log *logger.Logger, args []string) (int, error) {
	log.DebugContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	cfg, err := config.Load(appName, build)
	if err != nil {
		return 0, err
	}

	// STORAGE
	// ==============================================================================
	var storer tasksrepo.Storer
	switch cfg.Store {
	case config.StorePostgres:
		pg, err := postgresdb.New(ctx, cfg.Postgres, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return 0, fmt.Errorf("configuring postgres support: %w", err)
		}
		defer func() {
			log.DebugContext(ctx, "shutdown", "status", "closing database connection")
			pg.Close()
		}()
		storer = taskspgxstore.NewStore(log, pg)

	default:
		fs, err := tasksfilestore.NewStore(log, cfg.File)
		if err != nil {
			return 0, fmt.Errorf("configuring file store: %w", err)
		}
		storer = fs
	}
	log.DebugContext(ctx, "init", "store", cfg.Store)

	// REPOSITORIES
	// ==============================================================================
	repo := tasksrepo.NewRepository(log, storer)
	if _, err := repo.Load(ctx); err != nil {
		return 0, err
	}

	return commands.Run(ctx, repo, args, os.Stdout, os.Stderr), nil
}
