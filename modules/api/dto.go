package api

import (
	"time"

	domain "github.com/example/task-list-service/domain/task"
	"github.com/example/task-list-service/modules/activity"
)

// CreateTaskRequest is the HTTP request body for creating a task.
// Title is a pointer so a missing field can be told apart from an empty one.
type CreateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// TaskResponse is the HTTP representation of a task.
type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ActivityResponse is the HTTP response for the activity log.
type ActivityResponse struct {
	Entries []activity.Entry `json:"entries"`
	Total   int              `json:"total"`
}

// StatusResponse is the liveness payload.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is the payload of every failed request.
type ErrorResponse struct {
	Detail    string  `json:"detail"`
	ErrorCode *string `json:"error_code"`
}

func toTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		IsActive:    t.IsActive,
		CreatedAt:   formatTimestamp(t.CreatedAt),
		UpdatedAt:   formatTimestamp(t.UpdatedAt),
	}
}

func toTaskResponses(tasks []domain.Task) []TaskResponse {
	result := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, toTaskResponse(t))
	}
	return result
}

// formatTimestamp renders t as RFC 3339 at second precision in +09:00.
func formatTimestamp(t time.Time) string {
	return t.In(domain.JST).Format(time.RFC3339)
}
