// Package taskspgxstore keeps the task collection in a PostgreSQL table.
// Position in the collection is stored explicitly; Save replaces every row in
// one transaction.
package taskspgxstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/sdk/logger"
)

var taskColumns = []string{"position", "title", "description", "category", "completed"}

type taskRow struct {
	Position    int    `db:"position"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Category    string `db:"category"`
	Completed   bool   `db:"completed"`
}

// Store provides database access for Task collections.
type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

// NewStore creates a new Task store
func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log.With("mod", "taskspgxstore"),
		pool: pool,
	}
}

// Load returns every task ordered by position.
func (s *Store) Load(ctx context.Context) ([]tasksrepo.Task, error) {
	query := `
		SELECT position, title, description, category, completed
		FROM tasks
		ORDER BY position`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[taskRow])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	tasks := make([]tasksrepo.Task, len(records))
	for i, r := range records {
		tasks[i] = tasksrepo.Task{
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			Completed:   r.Completed,
		}
	}
	return tasks, nil
}

// Save replaces the table contents with tasks, numbering positions from zero.
func (s *Store) Save(ctx context.Context, tasks []tasksrepo.Task) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clearing tasks: %w", postgresdb.HandlePgError(err))
	}

	rows := make([][]any, len(tasks))
	for i, t := range tasks {
		rows[i] = []any{i, t.Title, t.Description, t.Category, t.Completed}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"tasks"}, taskColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("writing tasks: %w", postgresdb.HandlePgError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.log.DebugContext(ctx, "tasks saved", "count", len(tasks))
	return nil
}
