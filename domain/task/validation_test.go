package task

import (
	"errors"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestNewTaskValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     NewTask
		wantField string
		wantMsg   string
	}{
		{name: "title only", input: NewTask{Title: "Buy milk"}},
		{name: "title and description", input: NewTask{Title: "Buy milk", Description: strPtr("2 liters")}},
		{name: "title at limit", input: NewTask{Title: strings.Repeat("a", MaxTitleLength)}},
		{name: "multibyte title at limit", input: NewTask{Title: strings.Repeat("あ", MaxTitleLength)}},
		{name: "padded title kept valid", input: NewTask{Title: "  Buy milk  "}},
		{name: "description at limit", input: NewTask{Title: "t", Description: strPtr(strings.Repeat("d", MaxDescriptionLength))}},
		{name: "empty title", input: NewTask{Title: ""}, wantField: "title", wantMsg: "Title must not be empty"},
		{name: "whitespace title", input: NewTask{Title: " \t\n "}, wantField: "title", wantMsg: "Title must not be whitespace only"},
		{name: "title too long", input: NewTask{Title: strings.Repeat("a", MaxTitleLength+1)}, wantField: "title", wantMsg: "Title must be at most 200 characters"},
		{name: "empty description", input: NewTask{Title: "t", Description: strPtr("")}, wantField: "description", wantMsg: "Description must be null, not empty string"},
		{name: "description too long", input: NewTask{Title: "t", Description: strPtr(strings.Repeat("d", MaxDescriptionLength+1))}, wantField: "description", wantMsg: "Description must be at most 1000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
			if verr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", verr.Message, tt.wantMsg)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Error("errors.Is(err, ErrInvalid) = false, want true")
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{ID: 999})

	if got, want := err.Error(), "Task with id 999 not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = false, want true")
	}
	if errors.Is(err, ErrInvalid) {
		t.Error("errors.Is(err, ErrInvalid) = true, want false")
	}
}
