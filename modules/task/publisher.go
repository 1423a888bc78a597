package task

import (
	"context"

	domain "github.com/example/task-list-service/domain/task"
	"github.com/example/task-list-service/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// busPublisher emits lifecycle events on the mono event bus.
// Publishing is best-effort; failures are logged and never fail the operation.
type busPublisher struct {
	bus    mono.EventBus
	logger types.Logger
}

var _ Publisher = (*busPublisher)(nil)

func (p *busPublisher) TaskCreated(_ context.Context, task domain.Task) {
	event := events.TaskCreatedEvent{
		TaskID:    task.ID,
		Title:     task.Title,
		CreatedAt: task.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(p.bus, event, nil); err != nil {
		p.logger.Warn("Failed to publish TaskCreated event", "task_id", task.ID, "error", err)
	}
}

func (p *busPublisher) TaskCompleted(_ context.Context, task domain.Task) {
	event := events.TaskCompletedEvent{
		TaskID:      task.ID,
		Title:       task.Title,
		CompletedAt: task.UpdatedAt,
	}
	if err := events.TaskCompletedV1.Publish(p.bus, event, nil); err != nil {
		p.logger.Warn("Failed to publish TaskCompleted event", "task_id", task.ID, "error", err)
	}
}

func (p *busPublisher) TaskDeleted(_ context.Context, task domain.Task) {
	event := events.TaskDeletedEvent{
		TaskID:    task.ID,
		Title:     task.Title,
		DeletedAt: task.UpdatedAt,
	}
	if err := events.TaskDeletedV1.Publish(p.bus, event, nil); err != nil {
		p.logger.Warn("Failed to publish TaskDeleted event", "task_id", task.ID, "error", err)
	}
}
