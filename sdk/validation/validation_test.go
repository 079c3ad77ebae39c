package validation_test

import (
	"errors"
	"testing"

	"github.com/jrazmi/todolist/sdk/validation"
)

var errNeedTitle = errors.New("title is required")

func TestRequired(t *testing.T) {
	if err := validation.Required("title", "Buy milk", errNeedTitle); err != nil {
		t.Fatalf("Required(non-empty) = %v", err)
	}

	err := validation.Required("title", "", errNeedTitle)
	if !errors.Is(err, validation.ErrValidation) {
		t.Errorf("err %v does not match ErrValidation", err)
	}
	if !errors.Is(err, errNeedTitle) {
		t.Errorf("err %v does not match reason", err)
	}

	var fe *validation.FieldError
	if !errors.As(err, &fe) || fe.Field != "title" {
		t.Fatalf("errors.As FieldError failed for %v", err)
	}
	if got := fe.Error(); got != "title: title is required" {
		t.Errorf("Error() = %q", got)
	}
}
