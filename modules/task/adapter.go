package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-list-service/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TaskPort interface.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// CreateTask creates a new task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, input domain.NewTask) (domain.Task, error) {
	req := CreateTaskRequest{Title: input.Title, Description: input.Description}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCreateTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Task{}, fmt.Errorf("%s service call failed: %w", ServiceCreateTask, err)
	}
	return resp.result(ServiceCreateTask)
}

// ListTasks lists active tasks via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context) ([]domain.Task, error) {
	req := ListTasksRequest{}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListTasks,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceListTasks, err)
	}
	if resp.Tasks == nil {
		return []domain.Task{}, nil
	}
	return resp.Tasks, nil
}

// CompleteTask marks a task completed via the complete-task service.
func (a *taskAdapter) CompleteTask(ctx context.Context, id int64) (domain.Task, error) {
	req := TaskIDRequest{TaskID: id}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCompleteTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Task{}, fmt.Errorf("%s service call failed: %w", ServiceCompleteTask, err)
	}
	return resp.result(ServiceCompleteTask)
}

// DeleteTask soft-deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, id int64) (domain.Task, error) {
	req := TaskIDRequest{TaskID: id}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceDeleteTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Task{}, fmt.Errorf("%s service call failed: %w", ServiceDeleteTask, err)
	}
	return resp.result(ServiceDeleteTask)
}

// ResetTasks clears the store via the reset-tasks service.
func (a *taskAdapter) ResetTasks(ctx context.Context) error {
	req := ResetTasksRequest{}
	var resp ResetTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceResetTasks,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", ServiceResetTasks, err)
	}
	if !resp.Reset {
		return fmt.Errorf("%s: store not reset", ServiceResetTasks)
	}
	return nil
}

// result unwraps a single-task reply into the task or its domain error.
func (r TaskResponse) result(service string) (domain.Task, error) {
	if r.Error != nil {
		return domain.Task{}, r.Error.Err()
	}
	if r.Task == nil {
		return domain.Task{}, fmt.Errorf("%s service returned no task", service)
	}
	return *r.Task, nil
}
