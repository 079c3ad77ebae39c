package tasksrepo

import (
	"errors"

	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/sdk/validation"
)

var (
	// ErrTitleRequired is returned by Create and Edit for an empty title.
	ErrTitleRequired = errors.New("title is required")

	// ErrIndexOutOfRange is returned when an operation addresses no task.
	ErrIndexOutOfRange = errors.New("no task at index")

	ErrValidation     = validation.ErrValidation
	ErrCorruptStorage = repositories.ErrCorruptStorage
	ErrStorageWrite   = repositories.ErrStorageWrite
)
