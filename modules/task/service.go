package task

import (
	"context"
	"fmt"

	domain "github.com/example/task-list-service/domain/task"
)

// Publisher is told about every lifecycle transition after it has been applied.
type Publisher interface {
	TaskCreated(ctx context.Context, task domain.Task)
	TaskCompleted(ctx context.Context, task domain.Task)
	TaskDeleted(ctx context.Context, task domain.Task)
}

// Service implements the task lifecycle on top of the repository.
// It satisfies TaskPort so driving adapters can use it in-process.
type Service struct {
	repo      *TaskRepository
	clock     domain.Clock
	publisher Publisher
}

var _ TaskPort = (*Service)(nil)

// NewService creates a lifecycle service. A nil clock falls back to JSTClock.
func NewService(repo *TaskRepository, clock domain.Clock) *Service {
	if repo == nil {
		panic("task service requires non-nil repository")
	}
	if clock == nil {
		clock = domain.JSTClock{}
	}
	return &Service{repo: repo, clock: clock}
}

// SetPublisher installs the observer notified of transitions. nil disables it.
func (s *Service) SetPublisher(p Publisher) {
	s.publisher = p
}

// CreateTask validates input and stores a new active, incomplete task.
func (s *Service) CreateTask(ctx context.Context, input domain.NewTask) (domain.Task, error) {
	if err := input.Validate(); err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	task := s.repo.Insert(input, s.clock.Now())
	if s.publisher != nil {
		s.publisher.TaskCreated(ctx, task)
	}
	return task, nil
}

// ListTasks returns the active tasks in ascending id order.
func (s *Service) ListTasks(_ context.Context) ([]domain.Task, error) {
	return s.repo.ListActive(), nil
}

// CompleteTask marks an active task completed. Completing an already
// completed task returns it unchanged.
func (s *Service) CompleteTask(ctx context.Context, id int64) (domain.Task, error) {
	changed := false
	task, found, err := s.repo.Mutate(id, func(current domain.Task) (*domain.Patch, error) {
		if !current.IsActive {
			return nil, &domain.NotFoundError{ID: id}
		}
		if current.Completed {
			return nil, nil
		}
		changed = true
		return domain.CompletePatch(s.clock.Now()), nil
	})
	if err := resolve(id, found, err); err != nil {
		return domain.Task{}, err
	}

	if changed && s.publisher != nil {
		s.publisher.TaskCompleted(ctx, task)
	}
	return task, nil
}

// DeleteTask soft-deletes an active task and returns its post-delete state.
// Deleting a task twice fails with NotFoundError.
func (s *Service) DeleteTask(ctx context.Context, id int64) (domain.Task, error) {
	task, found, err := s.repo.Mutate(id, func(current domain.Task) (*domain.Patch, error) {
		if !current.IsActive {
			return nil, &domain.NotFoundError{ID: id}
		}
		return domain.DeactivatePatch(s.clock.Now()), nil
	})
	if err := resolve(id, found, err); err != nil {
		return domain.Task{}, err
	}

	if s.publisher != nil {
		s.publisher.TaskDeleted(ctx, task)
	}
	return task, nil
}

// ResetTasks drops every task and restarts ids at 1.
func (s *Service) ResetTasks(_ context.Context) error {
	s.repo.Reset()
	return nil
}

func resolve(id int64, found bool, err error) error {
	if err != nil {
		return err
	}
	if !found {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}
