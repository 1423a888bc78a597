package task

import (
	"context"
	"errors"

	domain "github.com/example/task-list-service/domain/task"
)

// Service names registered by the task module.
const (
	ServiceCreateTask   = "create-task"
	ServiceListTasks    = "list-tasks"
	ServiceCompleteTask = "complete-task"
	ServiceDeleteTask   = "delete-task"
	ServiceResetTasks   = "reset-tasks"
)

// Error codes carried in ServiceError.
const (
	CodeTaskNotFound     = "task_not_found"
	CodeValidationFailed = "validation_failed"
	CodeInternal         = "internal"
)

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// TaskIDRequest addresses a single task by id.
type TaskIDRequest struct {
	TaskID int64 `json:"task_id"`
}

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct{}

// ResetTasksRequest is the request for clearing the store.
type ResetTasksRequest struct{}

// TaskResponse is the response for operations that yield a single task.
// Exactly one of Task and Error is set.
type TaskResponse struct {
	Task  *domain.Task  `json:"task,omitempty"`
	Error *ServiceError `json:"error,omitempty"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// ResetTasksResponse is the response for clearing the store.
type ResetTasksResponse struct {
	Reset bool `json:"reset"`
}

// ServiceError is a lifecycle failure carried in-band so its kind survives
// the message boundary.
type ServiceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TaskID  int64  `json:"task_id,omitempty"`
	Field   string `json:"field,omitempty"`
}

// newServiceError classifies err for transport.
func newServiceError(err error) *ServiceError {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return &ServiceError{Code: CodeTaskNotFound, Message: notFound.Error(), TaskID: notFound.ID}
	}
	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		return &ServiceError{Code: CodeValidationFailed, Message: invalid.Message, Field: invalid.Field}
	}
	return &ServiceError{Code: CodeInternal, Message: err.Error()}
}

// Err turns the transported failure back into its domain error.
func (e *ServiceError) Err() error {
	switch e.Code {
	case CodeTaskNotFound:
		return &domain.NotFoundError{ID: e.TaskID}
	case CodeValidationFailed:
		return &domain.ValidationError{Field: e.Field, Message: e.Message}
	default:
		return errors.New(e.Message)
	}
}

// TaskPort defines the interface for task operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the lifecycle.
// Failures are *domain.NotFoundError, *domain.ValidationError or an
// unexpected error.
type TaskPort interface {
	CreateTask(ctx context.Context, input domain.NewTask) (domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CompleteTask(ctx context.Context, id int64) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) (domain.Task, error)
	ResetTasks(ctx context.Context) error
}
