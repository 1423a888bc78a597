package task

import (
	"context"
	"errors"
	"testing"

	domain "github.com/example/task-list-service/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)          {}
func (m *mockLogger) Info(msg string, args ...any)           {}
func (m *mockLogger) Warn(msg string, args ...any)           {}
func (m *mockLogger) Error(msg string, args ...any)          {}
func (m *mockLogger) With(args ...any) types.Logger          { return m }
func (m *mockLogger) WithError(err error) types.Logger       { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

// probeModule depends on the task module so the framework hands it the
// task service container.
type probeModule struct {
	port TaskPort
}

var _ mono.DependentModule = (*probeModule)(nil)

func (p *probeModule) Name() string                    { return "probe" }
func (p *probeModule) Start(_ context.Context) error   { return nil }
func (p *probeModule) Stop(_ context.Context) error    { return nil }
func (p *probeModule) Dependencies() []string          { return []string{"task"} }
func (p *probeModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "task" {
		p.port = NewTaskAdapter(container)
	}
}

func TestTaskModule_HandlersCarryErrorsInBand(t *testing.T) {
	m := NewModule(newStepClock(), &mockLogger{})
	ctx := context.Background()

	resp, err := m.createTask(ctx, CreateTaskRequest{Title: "  "}, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Nil(t, resp.Task)
	assert.Equal(t, CodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "title", resp.Error.Field)
	assert.Equal(t, "Title must not be whitespace only", resp.Error.Message)

	resp, err = m.completeTask(ctx, TaskIDRequest{TaskID: 999}, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeTaskNotFound, resp.Error.Code)
	assert.Equal(t, int64(999), resp.Error.TaskID)

	resp, err = m.createTask(ctx, CreateTaskRequest{Title: "ok"}, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.Task)
	assert.Equal(t, int64(1), resp.Task.ID)

	list, err := m.listTasks(ctx, ListTasksRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	health := m.Health(ctx)
	assert.True(t, health.Healthy)
	assert.Equal(t, 1, health.Details["records"])
}

func TestServiceError_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		target error
	}{
		{"not found", &domain.NotFoundError{ID: 5}, CodeTaskNotFound, domain.ErrNotFound},
		{"validation", &domain.ValidationError{Field: "title", Message: "bad"}, CodeValidationFailed, domain.ErrInvalid},
		{"unexpected", errors.New("boom"), CodeInternal, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := newServiceError(tt.err)
			assert.Equal(t, tt.code, se.Code)

			back := se.Err()
			assert.Equal(t, tt.err.Error(), back.Error())
			if tt.target != nil {
				assert.ErrorIs(t, back, tt.target)
			}
		})
	}
}

func TestTaskAdapter_ThroughMonoApplication(t *testing.T) {
	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError), // Suppress logs in tests
	)
	require.NoError(t, err)

	probe := &probeModule{}
	require.NoError(t, app.Register(NewModule(domain.JSTClock{}, &mockLogger{})))
	require.NoError(t, app.Register(probe))

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})
	require.NotNil(t, probe.port)

	desc := "from adapter"
	created, err := probe.port.CreateTask(ctx, domain.NewTask{Title: "Write report", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	require.NotNil(t, created.Description)
	assert.Equal(t, desc, *created.Description)
	_, offset := created.CreatedAt.Zone()
	assert.Equal(t, 9*60*60, offset)

	_, err = probe.port.CreateTask(ctx, domain.NewTask{Title: "\t"})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	completed, err := probe.port.CompleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)

	tasks, err := probe.port.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)

	deleted, err := probe.port.DeleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)

	_, err = probe.port.DeleteTask(ctx, created.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, created.ID, notFound.ID)

	tasks, err = probe.port.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	require.NoError(t, probe.port.ResetTasks(ctx))
	again, err := probe.port.CreateTask(ctx, domain.NewTask{Title: "after reset"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.ID)
}
