package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryGameLockerSerializesSameGame(t *testing.T) {
	locker := NewMemoryGameLocker()
	gameID := uuid.New()

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), gameID)
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected exclusive access, saw %d holders at once", maxSeen)
	}
}

func TestMemoryGameLockerHonoursContext(t *testing.T) {
	locker := NewMemoryGameLocker()
	gameID := uuid.New()

	unlock, err := locker.Lock(context.Background(), gameID)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := locker.Lock(ctx, gameID); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestMemoryGameLockerIndependentGames(t *testing.T) {
	locker := NewMemoryGameLocker()

	unlockA, err := locker.Lock(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("lock a: %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := locker.Lock(ctx, uuid.New())
	if err != nil {
		t.Fatalf("expected other game to lock freely, got %v", err)
	}
	unlockB()
	unlockB()
}
