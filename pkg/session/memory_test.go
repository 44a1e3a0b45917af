package session

import (
	"RomiioBot/internal/entity"
	"RomiioBot/pkg/catalog"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreGetOrCreate(t *testing.T) {
	store := NewMemoryStore(Options{})
	defer store.Close()
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

	if _, err := store.Get(ctx, "628111"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get on unseen customer: got %v, want ErrSessionNotFound", err)
	}

	state, err := store.GetOrCreate(ctx, "628111", now)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if state.Phase != entity.PhaseMain || state.CustomerID != "628111" {
		t.Fatalf("unexpected fresh state: %+v", state)
	}
	if !state.LastActivity.Equal(now) {
		t.Errorf("LastActivity = %v, want %v", state.LastActivity, now)
	}
}

func TestMemoryStoreUpdateReturnsCopies(t *testing.T) {
	store := NewMemoryStore(Options{})
	defer store.Close()
	ctx := context.Background()

	got, err := store.Update(ctx, "a", time.Now(), func(s *entity.ConversationState) error {
		s.SelectCategory(catalog.CategoryRegular)
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got.Category = catalog.CategoryEvent

	stored, _ := store.Get(ctx, "a")
	if stored.Category != catalog.CategoryRegular {
		t.Fatalf("store leaked internal state, category = %s", stored.Category)
	}
}

func TestMemoryStoreUpdateErrorDiscardsChanges(t *testing.T) {
	store := NewMemoryStore(Options{})
	defer store.Close()
	ctx := context.Background()
	boom := errors.New("boom")

	_, _ = store.Update(ctx, "a", time.Now(), func(s *entity.ConversationState) error {
		s.SelectCategory(catalog.CategorySpecial)
		return nil
	})

	_, err := store.Update(ctx, "a", time.Now(), func(s *entity.ConversationState) error {
		s.Reset()
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want boom", err)
	}

	stored, _ := store.Get(ctx, "a")
	if stored.Phase != entity.PhaseCategorySelected || stored.Category != catalog.CategorySpecial {
		t.Fatalf("failed update was committed: %+v", stored)
	}
}

func TestMemoryStoreUpdatePanicKeepsStateAndLock(t *testing.T) {
	store := NewMemoryStore(Options{})
	defer store.Close()
	ctx := context.Background()

	func() {
		defer func() { _ = recover() }()
		_, _ = store.Update(ctx, "a", time.Now(), func(s *entity.ConversationState) error {
			s.SelectCategory(catalog.CategoryEvent)
			panic("handler fault")
		})
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		stored, err := store.GetOrCreate(ctx, "a", time.Now())
		if err != nil {
			t.Errorf("GetOrCreate after panic: %v", err)
			return
		}
		if stored.HasCategory() {
			t.Errorf("panicking update was committed: %+v", stored)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session lock was not released after panic")
	}
}

func TestMemoryStoreConcurrentUpdatesAreSerialized(t *testing.T) {
	store := NewMemoryStore(Options{})
	defer store.Close()
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "shared", time.Now(), func(s *entity.ConversationState) error {
				s.Info.Date += "x"
				return nil
			})
			if err != nil {
				t.Errorf("Update: %v", err)
			}
		}()
	}
	wg.Wait()

	stored, _ := store.Get(ctx, "shared")
	if stored.Info.Date != strings.Repeat("x", workers) {
		t.Fatalf("lost updates: got %d writes, want %d", len(stored.Info.Date), workers)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(Options{})
	defer store.Close()
	ctx := context.Background()

	_, _ = store.GetOrCreate(ctx, "a", time.Now())
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get after Delete = %v, want ErrSessionNotFound", err)
	}
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete of missing session: %v", err)
	}
}

func TestMemoryStoreEvictsIdleSessions(t *testing.T) {
	s := NewMemoryStore(Options{TTL: time.Hour, SweepInterval: time.Hour}).(*memoryStore)
	defer s.Close()
	ctx := context.Background()
	start := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

	_, _ = s.Update(ctx, "idle", start, func(st *entity.ConversationState) error {
		st.Touch(start)
		return nil
	})
	_, _ = s.Update(ctx, "active", start, func(st *entity.ConversationState) error {
		st.Touch(start.Add(50 * time.Minute))
		return nil
	})

	evicted := s.evictIdle(start.Add(61 * time.Minute))
	if evicted != 1 {
		t.Fatalf("evicted = %d, want 1", evicted)
	}
	if s.size() != 1 {
		t.Fatalf("size = %d, want 1", s.size())
	}
	if _, err := s.Get(ctx, "idle"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("idle session survived eviction: %v", err)
	}
	if _, err := s.Get(ctx, "active"); err != nil {
		t.Fatalf("active session evicted: %v", err)
	}
}

func TestMemoryStoreWithoutTTLNeverEvicts(t *testing.T) {
	s := NewMemoryStore(Options{}).(*memoryStore)
	defer s.Close()

	_, _ = s.GetOrCreate(context.Background(), "a", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	if s.ttl != 0 {
		t.Fatal("expected no TTL")
	}
	if s.size() != 1 {
		t.Fatalf("size = %d, want 1", s.size())
	}
}
