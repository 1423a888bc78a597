package task

import (
	"errors"
	"sync"
	"testing"
	"time"

	domain "github.com/example/task-list-service/domain/task"
)

var (
	t0 = time.Date(2025, 1, 1, 9, 0, 0, 0, domain.JST)
	t1 = t0.Add(time.Second)
)

func TestTaskRepository_InsertAssignsSequentialIDs(t *testing.T) {
	repo := NewTaskRepository()

	for want := int64(1); want <= 3; want++ {
		got := repo.Insert(domain.NewTask{Title: "task"}, t0)
		if got.ID != want {
			t.Errorf("Insert() ID = %d, want %d", got.ID, want)
		}
		if !got.IsActive || got.Completed {
			t.Errorf("Insert() flags = active:%v completed:%v, want active:true completed:false", got.IsActive, got.Completed)
		}
		if !got.CreatedAt.Equal(t0) || !got.UpdatedAt.Equal(t0) {
			t.Errorf("Insert() timestamps = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, t0)
		}
	}
}

func TestTaskRepository_IDsNotReusedAfterDelete(t *testing.T) {
	repo := NewTaskRepository()
	first := repo.Insert(domain.NewTask{Title: "a"}, t0)
	repo.Update(first.ID, *domain.DeactivatePatch(t1))

	second := repo.Insert(domain.NewTask{Title: "b"}, t1)
	if second.ID != 2 {
		t.Errorf("Insert() after delete ID = %d, want 2", second.ID)
	}
}

func TestTaskRepository_GetByID(t *testing.T) {
	repo := NewTaskRepository()
	desc := "details"
	inserted := repo.Insert(domain.NewTask{Title: "a", Description: &desc}, t0)
	repo.Update(inserted.ID, *domain.DeactivatePatch(t1))

	got, found := repo.GetByID(inserted.ID)
	if !found {
		t.Fatal("GetByID() found = false, want true for inactive record")
	}
	if got.IsActive {
		t.Error("GetByID() IsActive = true, want false")
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("GetByID() Description = %v, want %q", got.Description, desc)
	}

	if _, found := repo.GetByID(42); found {
		t.Error("GetByID(42) found = true, want false")
	}
}

func TestTaskRepository_ReturnsCopies(t *testing.T) {
	repo := NewTaskRepository()
	desc := "original"
	inserted := repo.Insert(domain.NewTask{Title: "a", Description: &desc}, t0)

	desc = "changed by caller"
	*inserted.Description = "changed via result"
	inserted.Title = "changed"

	got, _ := repo.GetByID(inserted.ID)
	if got.Title != "a" || *got.Description != "original" {
		t.Errorf("stored record changed through alias: %+v", got)
	}
}

func TestTaskRepository_ListActive(t *testing.T) {
	repo := NewTaskRepository()
	if got := repo.ListActive(); got == nil || len(got) != 0 {
		t.Fatalf("ListActive() on empty = %v, want empty non-nil slice", got)
	}

	for i := 0; i < 5; i++ {
		repo.Insert(domain.NewTask{Title: "task"}, t0)
	}
	repo.Update(2, *domain.DeactivatePatch(t1))
	repo.Update(4, *domain.DeactivatePatch(t1))

	got := repo.ListActive()
	wantIDs := []int64{1, 3, 5}
	if len(got) != len(wantIDs) {
		t.Fatalf("ListActive() len = %d, want %d", len(got), len(wantIDs))
	}
	for i, task := range got {
		if task.ID != wantIDs[i] {
			t.Errorf("ListActive()[%d].ID = %d, want %d", i, task.ID, wantIDs[i])
		}
	}
}

func TestTaskRepository_Update(t *testing.T) {
	repo := NewTaskRepository()
	repo.Insert(domain.NewTask{Title: "a"}, t0)

	got, found := repo.Update(1, *domain.CompletePatch(t1))
	if !found {
		t.Fatal("Update() found = false, want true")
	}
	if !got.Completed || !got.UpdatedAt.Equal(t1) || !got.CreatedAt.Equal(t0) {
		t.Errorf("Update() = %+v", got)
	}

	if _, found := repo.Update(9, domain.Patch{}); found {
		t.Error("Update(9) found = true, want false")
	}
}

func TestTaskRepository_Mutate(t *testing.T) {
	repo := NewTaskRepository()
	repo.Insert(domain.NewTask{Title: "a"}, t0)

	t.Run("nil patch leaves record", func(t *testing.T) {
		got, found, err := repo.Mutate(1, func(domain.Task) (*domain.Patch, error) { return nil, nil })
		if err != nil || !found {
			t.Fatalf("Mutate() = found:%v err:%v", found, err)
		}
		if !got.UpdatedAt.Equal(t0) {
			t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, t0)
		}
	})

	t.Run("error propagates without change", func(t *testing.T) {
		sentinel := errors.New("stop")
		_, _, err := repo.Mutate(1, func(domain.Task) (*domain.Patch, error) {
			return domain.CompletePatch(t1), sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Fatalf("Mutate() err = %v, want %v", err, sentinel)
		}
		if got, _ := repo.GetByID(1); got.Completed {
			t.Error("record changed despite error")
		}
	})

	t.Run("patch applied", func(t *testing.T) {
		got, _, err := repo.Mutate(1, func(current domain.Task) (*domain.Patch, error) {
			if current.Completed {
				t.Error("fn saw completed record")
			}
			return domain.CompletePatch(t1), nil
		})
		if err != nil || !got.Completed {
			t.Errorf("Mutate() = %+v, %v", got, err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		called := false
		_, found, err := repo.Mutate(7, func(domain.Task) (*domain.Patch, error) {
			called = true
			return nil, nil
		})
		if found || err != nil || called {
			t.Errorf("Mutate(7) = found:%v err:%v called:%v", found, err, called)
		}
	})
}

func TestTaskRepository_Reset(t *testing.T) {
	repo := NewTaskRepository()
	repo.Insert(domain.NewTask{Title: "a"}, t0)
	repo.Insert(domain.NewTask{Title: "b"}, t0)

	repo.Reset()

	if repo.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", repo.Len())
	}
	if got := repo.Insert(domain.NewTask{Title: "c"}, t0); got.ID != 1 {
		t.Errorf("Insert() after Reset ID = %d, want 1", got.ID)
	}
}

func TestTaskRepository_ConcurrentInsert(t *testing.T) {
	repo := NewTaskRepository()
	const n = 100

	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- repo.Insert(domain.NewTask{Title: "task"}, t0).ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	for id := int64(1); id <= n; id++ {
		if !seen[id] {
			t.Errorf("id %d never assigned", id)
		}
	}
}
