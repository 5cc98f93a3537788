package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type lockSlot struct {
	ch   chan struct{}
	refs int
}

type memoryGameLocker struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*lockSlot
}

func NewMemoryGameLocker() GameLocker {
	return &memoryGameLocker{slots: make(map[uuid.UUID]*lockSlot)}
}

func (l *memoryGameLocker) Lock(ctx context.Context, gameID uuid.UUID) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[gameID]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[gameID] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(gameID, slot)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-slot.ch
			l.release(gameID, slot)
		})
	}, nil
}

func (l *memoryGameLocker) release(gameID uuid.UUID, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, gameID)
	}
}
