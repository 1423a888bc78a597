package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/example/task-list-service/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// DefaultCapacity bounds the log when no capacity is configured.
const DefaultCapacity = 1000

// ServiceListActivity is the request-reply service exposing the log.
const ServiceListActivity = "list-activity"

// Entry types recorded in the log.
const (
	TypeTaskCreated   = "task_created"
	TypeTaskCompleted = "task_completed"
	TypeTaskDeleted   = "task_deleted"
)

// Entry is one recorded lifecycle transition.
type Entry struct {
	ID        string    `json:"id"`
	TaskID    int64     `json:"task_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ListActivityRequest asks for the newest Limit entries; zero means all.
type ListActivityRequest struct {
	Limit int `json:"limit"`
}

// ListActivityResponse holds entries oldest first.
type ListActivityResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// ActivityModule listens to task lifecycle events and keeps a bounded
// in-memory log of them.
type ActivityModule struct {
	entries  []Entry
	capacity int
	mu       sync.RWMutex
	logger   types.Logger
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)
var _ mono.ServiceProviderModule = (*ActivityModule)(nil)

// NewModule creates an activity module keeping at most capacity entries.
func NewModule(capacity int, logger types.Logger) *ActivityModule {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ActivityModule{
		entries:  make([]Entry, 0),
		capacity: capacity,
		logger:   logger,
	}
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"TaskCreated", "TaskCompleted", "TaskDeleted"})
	return nil
}

func (m *ActivityModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListActivity, json.Unmarshal, json.Marshal, m.listActivity,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListActivity, err)
	}
	return nil
}

func (m *ActivityModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, TypeTaskCreated, fmt.Sprintf("Task %d '%s' created", event.TaskID, event.Title), event.CreatedAt)
	return nil
}

func (m *ActivityModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, TypeTaskCompleted, fmt.Sprintf("Task %d '%s' completed", event.TaskID, event.Title), event.CompletedAt)
	return nil
}

func (m *ActivityModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, TypeTaskDeleted, fmt.Sprintf("Task %d '%s' deleted", event.TaskID, event.Title), event.DeletedAt)
	return nil
}

func (m *ActivityModule) listActivity(_ context.Context, req ListActivityRequest, _ *mono.Msg) (ListActivityResponse, error) {
	entries := m.Entries(req.Limit)
	return ListActivityResponse{Entries: entries, Total: len(entries)}, nil
}

func (m *ActivityModule) record(taskID int64, entryType, message string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, Entry{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Type:      entryType,
		Message:   message,
		Timestamp: at,
	})
	if over := len(m.entries) - m.capacity; over > 0 {
		m.entries = append(m.entries[:0:0], m.entries[over:]...)
	}
	m.logger.Debug("Recorded activity", "task_id", taskID, "type", entryType)
}

// Entries returns the newest limit entries, oldest first. A non-positive
// limit returns everything.
func (m *ActivityModule) Entries(limit int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := 0
	if limit > 0 && limit < len(m.entries) {
		start = len(m.entries) - limit
	}
	result := make([]Entry, len(m.entries)-start)
	copy(result, m.entries[start:])
	return result
}

func (m *ActivityModule) Start(_ context.Context) error {
	m.logger.Info("Activity module started - listening for task events", "capacity", m.capacity)
	return nil
}

func (m *ActivityModule) Stop(_ context.Context) error {
	m.logger.Info("Activity module stopped")
	return nil
}
