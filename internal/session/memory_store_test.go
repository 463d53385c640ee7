package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/supplychain-leads/internal/wizard"
)

func TestMemoryStore_RoundTripAndIsolation(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	data := sampleData()
	require.NoError(t, store.Save(ctx, "s", data))
	data.Wizard.Draft.Name = "mutated"

	got, err := store.Load(ctx, "s")
	require.NoError(t, err)
	if diff := cmp.Diff(sampleData(), got); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s", &Data{Wizard: wizard.Snapshot{State: wizard.StateStep2}}))
	_, err := store.Load(ctx, "s")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, "s")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SaveSweepsAbandonedSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "gone-1", &Data{}))
	require.NoError(t, store.Save(ctx, "gone-2", &Data{}))
	assert.Equal(t, 2, store.Len())

	now = now.Add(30 * time.Second)
	require.NoError(t, store.Save(ctx, "recent", &Data{}))
	assert.Equal(t, 3, store.Len(), "no sweep before the interval")

	now = now.Add(45 * time.Second)
	require.NoError(t, store.Save(ctx, "fresh", &Data{}))
	assert.Equal(t, 2, store.Len())

	_, err := store.Load(ctx, "gone-1")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.Load(ctx, "recent")
	require.NoError(t, err)
}

func TestMemoryStore_Lock(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	store.lockWait = 30 * time.Millisecond
	ctx := context.Background()

	unlock, err := store.Lock(ctx, "s")
	require.NoError(t, err)

	_, err = store.Lock(ctx, "s")
	require.ErrorIs(t, err, ErrLocked)

	other, err := store.Lock(ctx, "other")
	require.NoError(t, err)
	other()

	unlock()
	again, err := store.Lock(ctx, "s")
	require.NoError(t, err)
	again()
}

func TestMemoryStore_LockHonoursContext(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	unlock, err := store.Lock(ctx, "s")
	require.NoError(t, err)
	defer unlock()

	cancel()
	_, err = store.Lock(ctx, "s")
	assert.ErrorIs(t, err, context.Canceled)
}
