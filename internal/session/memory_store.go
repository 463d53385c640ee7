package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

const memorySweepInterval = time.Minute

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

// MemoryStore is a process-local Store for development and tests.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	locks    map[string]time.Time
	ttl      time.Duration
	lockTTL  time.Duration
	lockWait time.Duration
	now      func() time.Time

	lastSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryStore{
		entries:  make(map[string]memoryEntry),
		locks:    make(map[string]time.Time),
		ttl:      ttl,
		lockTTL:  defaultLockTTL,
		lockWait: defaultLockWait,
		now:      time.Now,
	}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*Data, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && !s.now().Before(entry.expires) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	var data Data
	if err := json.Unmarshal(entry.raw, &data); err != nil {
		return nil, fmt.Errorf("session: failed to decode: %w", err)
	}
	return &data, nil
}

// Save stores an encoded copy so callers cannot mutate stored state.
func (s *MemoryStore) Save(ctx context.Context, id string, data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}
	s.mu.Lock()
	now := s.now()
	if now.Sub(s.lastSweep) >= memorySweepInterval {
		s.sweep(now)
	}
	s.entries[id] = memoryEntry{raw: raw, expires: now.Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

// sweep drops expired sessions and stale locks. Callers hold s.mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, entry := range s.entries {
		if !now.Before(entry.expires) {
			delete(s.entries, id)
		}
	}
	for id, exp := range s.locks {
		if !now.Before(exp) {
			delete(s.locks, id)
		}
	}
	s.lastSweep = now
}

// Len reports the number of stored sessions, expired ones included until the
// next sweep.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) Lock(ctx context.Context, id string) (func(), error) {
	var held time.Time
	err := waitFor(ctx, s.lockWait, func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		now := s.now()
		if exp, ok := s.locks[id]; ok && now.Before(exp) {
			return false, nil
		}
		held = now.Add(s.lockTTL)
		s.locks[id] = held
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return func() {
		s.mu.Lock()
		if s.locks[id].Equal(held) {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}, nil
}
