package session

import (
	"context"
	"errors"
	"time"

	"github.com/wolfman30/supplychain-leads/internal/notify"
	"github.com/wolfman30/supplychain-leads/internal/wizard"
)

var (
	// ErrNotFound is returned for unknown or expired sessions.
	ErrNotFound = errors.New("session: not found")

	// ErrLocked is returned when another request holds the session lock.
	ErrLocked = errors.New("session: locked by another request")
)

const (
	defaultTTL      = 24 * time.Hour
	defaultLockTTL  = 30 * time.Second
	defaultLockWait = 2 * time.Second
	lockPoll        = 25 * time.Millisecond
)

// Data is everything kept per browser session.
type Data struct {
	Wizard    wizard.Snapshot `json:"wizard"`
	Toasts    []notify.Toast  `json:"toasts,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store persists session data. Lock serialises mutating requests on one
// session; the returned func releases it.
type Store interface {
	Load(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data) error
	Lock(ctx context.Context, id string) (unlock func(), err error)
}

// waitFor polls try until it succeeds, the wait elapses or ctx ends.
func waitFor(ctx context.Context, wait time.Duration, try func() (bool, error)) error {
	deadline := time.Now().Add(wait)
	ticker := time.NewTicker(lockPoll)
	defer ticker.Stop()
	for {
		ok, err := try()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrLocked
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
