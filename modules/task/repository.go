package task

import (
	"cmp"
	"slices"
	"sync"
	"time"

	domain "github.com/example/task-list-service/domain/task"
)

// TaskRepository provides in-memory task storage with sequential ids.
// Records are handed out by value so callers never share stored state.
type TaskRepository struct {
	tasks  map[int64]domain.Task
	nextID int64
	mu     sync.RWMutex
}

// NewTaskRepository creates an empty repository whose first id is 1.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks:  make(map[int64]domain.Task),
		nextID: 1,
	}
}

// Insert stores a new active, incomplete task stamped with now and returns it.
func (r *TaskRepository) Insert(input domain.NewTask, now time.Time) domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	task := domain.Task{
		ID:          r.nextID,
		Title:       input.Title,
		Description: cloneString(input.Description),
		Completed:   false,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.tasks[task.ID] = task
	r.nextID++
	return copyTask(task)
}

// GetByID returns the task with the given id, active or not.
func (r *TaskRepository) GetByID(id int64) (domain.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, found := r.tasks[id]
	if !found {
		return domain.Task{}, false
	}
	return copyTask(task), true
}

// ListActive returns active tasks ordered by ascending id.
func (r *TaskRepository) ListActive() []domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if task.IsActive {
			result = append(result, copyTask(task))
		}
	}
	slices.SortFunc(result, func(a, b domain.Task) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Update overwrites the fields set in patch. It reports false when id is unknown.
func (r *TaskRepository) Update(id int64, patch domain.Patch) (domain.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, found := r.tasks[id]
	if !found {
		return domain.Task{}, false
	}
	task = patch.Apply(task)
	r.tasks[id] = task
	return copyTask(task), true
}

// Mutate looks up id and applies the patch fn decides on under a single
// write lock. A nil patch leaves the record untouched and the current record
// is returned. Errors from fn are returned as is, with the current record.
func (r *TaskRepository) Mutate(id int64, fn func(current domain.Task) (*domain.Patch, error)) (domain.Task, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, found := r.tasks[id]
	if !found {
		return domain.Task{}, false, nil
	}

	patch, err := fn(copyTask(task))
	if err != nil {
		return copyTask(task), true, err
	}
	if patch != nil {
		task = patch.Apply(task)
		r.tasks[id] = task
	}
	return copyTask(task), true, nil
}

// Reset drops every record and restarts ids at 1.
func (r *TaskRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = make(map[int64]domain.Task)
	r.nextID = 1
}

// Len returns the number of stored records, inactive ones included.
func (r *TaskRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tasks)
}

func copyTask(t domain.Task) domain.Task {
	t.Description = cloneString(t.Description)
	return t
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
