package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-list-service/domain/task"
	"github.com/example/task-list-service/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// TaskModule provides task lifecycle services (core domain).
type TaskModule struct {
	repo    *TaskRepository
	service *Service
	logger  types.Logger
}

var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a task module backed by a fresh repository.
func NewModule(clock domain.Clock, logger types.Logger) *TaskModule {
	repo := NewTaskRepository()
	return &TaskModule{
		repo:    repo,
		service: NewService(repo, clock),
		logger:  logger,
	}
}

func (m *TaskModule) Name() string {
	return "task"
}

// Service exposes the in-process lifecycle service.
func (m *TaskModule) Service() *Service {
	return m.service
}

func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	if bus == nil {
		m.service.SetPublisher(nil)
		return
	}
	m.service.SetPublisher(&busPublisher{bus: bus, logger: m.logger})
}

func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskCompletedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreateTask, json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreateTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListTasks, json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListTasks, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCompleteTask, json.Unmarshal, json.Marshal, m.completeTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCompleteTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDeleteTask, json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDeleteTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceResetTasks, json.Unmarshal, json.Marshal, m.resetTasks,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceResetTasks, err)
	}

	m.logger.Info("Registered task services",
		"services", []string{ServiceCreateTask, ServiceListTasks, ServiceCompleteTask, ServiceDeleteTask, ServiceResetTasks})
	return nil
}

func (m *TaskModule) Start(_ context.Context) error {
	m.logger.Info("Task module started")
	return nil
}

func (m *TaskModule) Stop(_ context.Context) error {
	m.logger.Info("Task module stopped", "records", m.repo.Len())
	return nil
}

// Health reports the number of stored records.
func (m *TaskModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"records": m.repo.Len(),
			"active":  len(m.repo.ListActive()),
		},
	}
}
