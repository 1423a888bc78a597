package task

import "time"

// State is the lifecycle position of a task derived from its flags.
type State string

const (
	StateActiveIncomplete State = "active-incomplete"
	StateActiveComplete   State = "active-complete"
	StateInactive         State = "inactive"
)

// Task is the core domain entity representing a todo item.
// Description is nil when no description was given.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// State reports where the task sits in its lifecycle.
func (t Task) State() State {
	switch {
	case !t.IsActive:
		return StateInactive
	case t.Completed:
		return StateActiveComplete
	default:
		return StateActiveIncomplete
	}
}

// NewTask carries the client-supplied fields of a task to be created.
type NewTask struct {
	Title       string
	Description *string
}

// Patch is a partial update. A nil field leaves the stored value as is,
// a non-nil field overwrites it.
type Patch struct {
	Completed *bool
	IsActive  *bool
	UpdatedAt *time.Time
}

// Apply returns t with every field set in p overwritten.
func (p Patch) Apply(t Task) Task {
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	if p.UpdatedAt != nil {
		t.UpdatedAt = *p.UpdatedAt
	}
	return t
}

// CompletePatch marks a task completed at the given instant.
func CompletePatch(at time.Time) *Patch {
	completed := true
	return &Patch{Completed: &completed, UpdatedAt: &at}
}

// DeactivatePatch soft-deletes a task at the given instant.
func DeactivatePatch(at time.Time) *Patch {
	active := false
	return &Patch{IsActive: &active, UpdatedAt: &at}
}
