package tasksrepo

import (
	"github.com/google/uuid"
	"github.com/jrazmi/todolist/sdk/validation"
)

const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// Task is one to-do item.
//
// ID is assigned in memory when a task is loaded or created and is never
// persisted; position in the collection is the identity every operation uses.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Category    string
	Completed   bool
}

// NewTask returns a pending task with a fresh ID.
func NewTask(title, description, category string) Task {
	return Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Category:    category,
	}
}

// Status is the display label derived from Completed.
func (t Task) Status() string {
	if t.Completed {
		return StatusCompleted
	}
	return StatusPending
}

// Equal compares the persisted fields, ignoring ID.
func (t Task) Equal(o Task) bool {
	return t.Title == o.Title &&
		t.Description == o.Description &&
		t.Category == o.Category &&
		t.Completed == o.Completed
}

// CreateTask contains fields for creating a new task.
type CreateTask struct {
	Title       string
	Description string
	Category    string
}

func (c CreateTask) Validate() error {
	return validation.Required("title", c.Title, ErrTitleRequired)
}

// UpdateTask replaces the editable fields of an existing task. Completed is
// not editable.
type UpdateTask struct {
	Title       string
	Description string
	Category    string
}

func (u UpdateTask) Validate() error {
	return validation.Required("title", u.Title, ErrTitleRequired)
}
