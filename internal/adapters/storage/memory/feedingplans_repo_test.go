package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"shelter-feeding/internal/domain/feeding"
)

// Dos creaciones concurrentes no pueden dejar dos planes active:
// el repo serializa CreateSuperseding completo bajo su mutex.
func TestFeedingPlanRepo_ConcurrentCreates_KeepOneActive(t *testing.T) {
	repo := NewFeedingPlanRepo()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	const workers = 25

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CreateSuperseding(context.Background(), feeding.FeedingPlan{
				ID:        fmt.Sprintf("plan-%d", i),
				AnimalID:  "animal-1",
				StartDate: now,
				Status:    feeding.PlanStatusActive,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				t.Errorf("CreateSuperseding: %v", err)
			}
		}(i)
	}
	wg.Wait()

	plans, err := repo.ListByAnimal(context.Background(), "animal-1")
	if err != nil {
		t.Fatalf("ListByAnimal error: %v", err)
	}
	if len(plans) != workers {
		t.Fatalf("expected %d plans, got %d", workers, len(plans))
	}

	active := 0
	for _, p := range plans {
		if p.Status == feeding.PlanStatusActive {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly 1 active plan, got %d", active)
	}

	if _, err := repo.GetActiveByAnimal(context.Background(), "animal-1"); err != nil {
		t.Fatalf("GetActiveByAnimal error: %v", err)
	}
}

func TestFeedingPlanRepo_SupersessionReportsClosedIDs(t *testing.T) {
	repo := NewFeedingPlanRepo()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	if _, err := repo.CreateSuperseding(context.Background(), feeding.FeedingPlan{
		ID: "plan-a", AnimalID: "animal-1", Status: feeding.PlanStatusActive, CreatedAt: now,
	}); err != nil {
		t.Fatalf("CreateSuperseding #1 error: %v", err)
	}

	closed, err := repo.CreateSuperseding(context.Background(), feeding.FeedingPlan{
		ID: "plan-b", AnimalID: "animal-1", Status: feeding.PlanStatusActive, CreatedAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateSuperseding #2 error: %v", err)
	}
	if len(closed) != 1 || closed[0] != "plan-a" {
		t.Fatalf("expected closed [plan-a], got %v", closed)
	}

	old, err := repo.GetByID(context.Background(), "plan-a")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if old.Status != feeding.PlanStatusClosed || old.ClosedAt == nil || !old.ClosedAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected plan-a closed at supersession instant, got %+v", old)
	}

	// Planes de otros animales no se tocan.
	if _, err := repo.CreateSuperseding(context.Background(), feeding.FeedingPlan{
		ID: "plan-c", AnimalID: "animal-2", Status: feeding.PlanStatusActive, CreatedAt: now,
	}); err != nil {
		t.Fatalf("CreateSuperseding #3 error: %v", err)
	}
	if p, _ := repo.GetActiveByAnimal(context.Background(), "animal-1"); p.ID != "plan-b" {
		t.Fatalf("expected plan-b still active for animal-1, got %s", p.ID)
	}
}

func TestFeedingPlanRepo_Close(t *testing.T) {
	repo := NewFeedingPlanRepo()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	if _, err := repo.CreateSuperseding(context.Background(), feeding.FeedingPlan{
		ID: "plan-a", AnimalID: "animal-1", Status: feeding.PlanStatusActive, CreatedAt: now,
	}); err != nil {
		t.Fatalf("CreateSuperseding error: %v", err)
	}

	if err := repo.Close(context.Background(), "plan-a", now.Add(time.Minute)); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if _, err := repo.GetActiveByAnimal(context.Background(), "animal-1"); err != ErrNotFound {
		t.Fatalf("expected no active plan after close, got %v", err)
	}

	// cerrar dos veces no falla
	if err := repo.Close(context.Background(), "plan-a", now.Add(2*time.Minute)); err != nil {
		t.Fatalf("Close #2 error: %v", err)
	}
	if err := repo.Close(context.Background(), "ghost", now); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown plan, got %v", err)
	}
}
