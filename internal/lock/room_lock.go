// Package lock provides the per-room exclusion scope the reservation engine
// holds across its check-then-act sequences. Commit and cancel for the same
// room serialize on the same key; different rooms never contend.
package lock

import (
	"context"
	"sync"
)

// RoomLocker serializes reservation work per room id. Lock blocks until the
// room's critical section is free and returns the release function.
type RoomLocker interface {
	Lock(ctx context.Context, roomID string) (release func(), err error)
}

// KeyedRoomLock is an in-process RoomLocker backed by one mutex per room id.
// Entries are reference counted and dropped once the last holder releases,
// so the map does not grow with the number of rooms ever seen.
type KeyedRoomLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedRoomLock creates a new KeyedRoomLock
func NewKeyedRoomLock() *KeyedRoomLock {
	return &KeyedRoomLock{
		locks: make(map[string]*lockEntry),
	}
}

// Lock acquires the mutex for roomID, blocking while another commit or
// cancel holds it. The returned release function must be called exactly once.
func (l *KeyedRoomLock) Lock(_ context.Context, roomID string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[roomID]
	if !ok {
		entry = &lockEntry{}
		l.locks[roomID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, roomID)
		}
		l.mu.Unlock()
	}, nil
}
