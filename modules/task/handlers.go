package task

import (
	"context"

	domain "github.com/example/task-list-service/domain/task"
	"github.com/go-monolith/mono"
)

// Logical failures go into the response body. Returning them as handler
// errors would reduce them to strings on the way back to the caller.

func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.CreateTask(ctx, domain.NewTask{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return TaskResponse{Error: newServiceError(err)}, nil
	}
	return TaskResponse{Task: &task}, nil
}

func (m *TaskModule) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.ListTasks(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

func (m *TaskModule) completeTask(ctx context.Context, req TaskIDRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.CompleteTask(ctx, req.TaskID)
	if err != nil {
		return TaskResponse{Error: newServiceError(err)}, nil
	}
	return TaskResponse{Task: &task}, nil
}

func (m *TaskModule) deleteTask(ctx context.Context, req TaskIDRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.DeleteTask(ctx, req.TaskID)
	if err != nil {
		return TaskResponse{Error: newServiceError(err)}, nil
	}
	return TaskResponse{Task: &task}, nil
}

func (m *TaskModule) resetTasks(ctx context.Context, _ ResetTasksRequest, _ *mono.Msg) (ResetTasksResponse, error) {
	if err := m.service.ResetTasks(ctx); err != nil {
		return ResetTasksResponse{}, err
	}
	m.logger.Warn("Task store reset")
	return ResetTasksResponse{Reset: true}, nil
}
