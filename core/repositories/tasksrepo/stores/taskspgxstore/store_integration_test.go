package taskspgxstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/schema"
	"github.com/jrazmi/todolist/sdk/logger"
)

var _ tasksrepo.Storer = (*taskspgxstore.Store)(nil)

// newTestStore connects to TODO_TEST_PG_DATABASE_URL, migrates and empties the
// tasks table. Tests are skipped when the variable is unset.
func newTestStore(t *testing.T) *taskspgxstore.Store {
	t.Helper()
	url := os.Getenv("TODO_TEST_PG_DATABASE_URL")
	if url == "" {
		t.Skip("TODO_TEST_PG_DATABASE_URL not set")
	}

	ctx := context.Background()
	log := logger.NewDiscard()
	pool, err := postgresdb.NewTestDB(ctx, url,
		postgresdb.WithLogger(log.Logger),
		postgresdb.WithTracer(postgresdb.NewLoggingQueryTracer(log.Logger)),
	)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := postgresdb.Migrate(ctx, log.Logger, pool, schema.MigrationsFS, schema.MigrationsDir); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM tasks"); err != nil {
		t.Fatalf("cleaning tasks: %v", err)
	}

	return taskspgxstore.NewStore(log, pool)
}

func TestPgStoreEmpty(t *testing.T) {
	store := newTestStore(t)

	tasks, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("Load() = %v, want empty", tasks)
	}
}

func TestPgStoreRoundTripThroughRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	repo := tasksrepo.NewRepository(logger.NewDiscard(), store)
	if _, err := repo.Load(ctx); err != nil {
		t.Fatal(err)
	}
	for _, title := range []string{"A", "B", "C"} {
		if _, err := repo.Create(ctx, tasksrepo.CreateTask{Title: title, Category: "cat"}); err != nil {
			t.Fatalf("Create(%s): %v", title, err)
		}
	}
	if _, err := repo.MarkCompleted(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Delete(ctx, 0); err != nil {
		t.Fatal(err)
	}
	want := repo.List()

	reloaded := tasksrepo.NewRepository(logger.NewDiscard(), store)
	got, err := reloaded.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("task %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
