package tasksrepo

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/sdk/logger"
)

// Storer defines the durable storage a Repository synchronizes with.
type Storer interface {
	repositories.CollectionStore[Task]
}

// Repository owns the ordered task collection for the life of the process.
// Every mutation is followed by a full-collection Save before it returns.
//
// A Repository is not safe for concurrent use.
type Repository struct {
	log     *logger.Logger
	storer  Storer
	tasks   []Task
	pending bool
}

// NewRepository creates a Repository with an empty collection. Call Load to
// populate it from storage.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log.With("mod", "tasksrepo"),
		storer: storer,
		tasks:  []Task{},
	}
}

// Load replaces the in-memory collection with the stored one. Missing storage
// and corrupt storage both yield an empty collection; any other read failure
// is returned and leaves memory untouched.
func (r *Repository) Load(ctx context.Context) ([]Task, error) {
	tasks, err := r.storer.Load(ctx)
	switch {
	case errors.Is(err, ErrCorruptStorage):
		r.log.WarnContext(ctx, "stored tasks unreadable, starting empty", "err", err)
		tasks = []Task{}
	case err != nil:
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}
	for i := range tasks {
		if tasks[i].ID == uuid.Nil {
			tasks[i].ID = uuid.New()
		}
	}

	r.tasks = tasks
	r.pending = false
	r.log.DebugContext(ctx, "tasks loaded", "count", len(tasks))
	return r.List(), nil
}

// Save writes the whole collection, in order, to storage. On failure the
// in-memory collection stays as it is and Pending reports true until a later
// Save succeeds.
func (r *Repository) Save(ctx context.Context) error {
	if err := r.storer.Save(ctx, slices.Clone(r.tasks)); err != nil {
		r.pending = true
		r.log.ErrorContext(ctx, "saving tasks", "count", len(r.tasks), "err", err)
		return fmt.Errorf("save tasks: %w: %w", ErrStorageWrite, err)
	}
	r.pending = false
	return nil
}

// Pending reports whether memory holds changes that the last Save failed to
// persist.
func (r *Repository) Pending() bool {
	return r.pending
}

// Create appends a new pending task and saves. An empty title is rejected
// before anything changes.
//
// When only the save fails the task is still appended and returned together
// with an error wrapping ErrStorageWrite.
func (r *Repository) Create(ctx context.Context, input CreateTask) (Task, error) {
	if err := input.Validate(); err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	task := NewTask(input.Title, input.Description, input.Category)
	r.tasks = append(r.tasks, task)
	r.log.InfoContext(ctx, "task created", "index", len(r.tasks)-1, "id", task.ID)

	return task, r.Save(ctx)
}

// Edit overwrites title, description and category of the task at index.
// Completed is left as it is.
func (r *Repository) Edit(ctx context.Context, index int, input UpdateTask) (Task, error) {
	if err := r.checkIndex(index); err != nil {
		return Task{}, fmt.Errorf("edit task: %w", err)
	}
	if err := input.Validate(); err != nil {
		return Task{}, fmt.Errorf("edit task: %w", err)
	}

	task := &r.tasks[index]
	task.Title = input.Title
	task.Description = input.Description
	task.Category = input.Category
	r.log.InfoContext(ctx, "task edited", "index", index, "id", task.ID)

	return *task, r.Save(ctx)
}

// MarkCompleted sets the task at index to completed. Completing an already
// completed task succeeds and saves again.
func (r *Repository) MarkCompleted(ctx context.Context, index int) (Task, error) {
	if err := r.checkIndex(index); err != nil {
		return Task{}, fmt.Errorf("complete task: %w", err)
	}

	task := &r.tasks[index]
	task.Completed = true
	r.log.InfoContext(ctx, "task completed", "index", index, "id", task.ID)

	return *task, r.Save(ctx)
}

// Delete removes the task at index; later tasks move down one position. The
// removed task is returned.
func (r *Repository) Delete(ctx context.Context, index int) (Task, error) {
	if err := r.checkIndex(index); err != nil {
		return Task{}, fmt.Errorf("delete task: %w", err)
	}

	task := r.tasks[index]
	r.tasks = slices.Delete(r.tasks, index, index+1)
	r.log.InfoContext(ctx, "task deleted", "index", index, "id", task.ID)

	return task, r.Save(ctx)
}

// List returns a copy of the collection in order.
func (r *Repository) List() []Task {
	return slices.Clone(r.tasks)
}

// Len returns the number of tasks.
func (r *Repository) Len() int {
	return len(r.tasks)
}

// Get returns the task at index.
func (r *Repository) Get(index int) (Task, error) {
	if err := r.checkIndex(index); err != nil {
		return Task{}, err
	}
	return r.tasks[index], nil
}

// IndexOf resolves a task ID to its current index, or -1.
func (r *Repository) IndexOf(id uuid.UUID) int {
	return slices.IndexFunc(r.tasks, func(t Task) bool {
		return t.ID == id
	})
}

func (r *Repository) checkIndex(index int) error {
	if index < 0 || index >= len(r.tasks) {
		return fmt.Errorf("%w %d: have %d tasks", ErrIndexOutOfRange, index, len(r.tasks))
	}
	return nil
}
