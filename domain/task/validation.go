package task

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Validate checks the creation rules for a task. Title is measured in
// characters as given; only the whitespace check looks at the trimmed form.
func (n NewTask) Validate() error {
	if n.Title == "" {
		return &ValidationError{Field: "title", Message: "Title must not be empty"}
	}
	if utf8.RuneCountInString(n.Title) > MaxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("Title must be at most %d characters", MaxTitleLength),
		}
	}
	if strings.TrimSpace(n.Title) == "" {
		return &ValidationError{Field: "title", Message: "Title must not be whitespace only"}
	}

	if n.Description == nil {
		return nil
	}
	if *n.Description == "" {
		return &ValidationError{Field: "description", Message: "Description must be null, not empty string"}
	}
	if utf8.RuneCountInString(*n.Description) > MaxDescriptionLength {
		return &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("Description must be at most %d characters", MaxDescriptionLength),
		}
	}
	return nil
}
