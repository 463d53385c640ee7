package leads

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for lead storage
type Repository interface {
	Insert(ctx context.Context, rec Record) (*Lead, error)
	List(ctx context.Context, filter ListFilter) ([]*Lead, error)
}

// ListFilter narrows the admin listing. Results are newest first.
type ListFilter struct {
	Limit    int
	Offset   int
	Interest Interest
}

func (f ListFilter) normalized() ListFilter {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// InMemoryRepository keeps leads in process memory; used in development and tests
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads []*Lead
	now   func() time.Time
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Insert stores the record and assigns its id and creation time
func (r *InMemoryRepository) Insert(ctx context.Context, rec Record) (*Lead, error) {
	lead := &Lead{
		ID:        uuid.New().String(),
		Name:      rec.Name,
		Email:     rec.Email,
		Interest:  rec.Interest,
		CreatedAt: r.now(),
	}

	r.mu.Lock()
	r.leads = append(r.leads, lead)
	r.mu.Unlock()

	return lead, nil
}

// List returns copies of the stored leads, newest first
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	filter = filter.normalized()

	r.mu.RLock()
	matched := make([]*Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		if filter.Interest != "" && lead.Interest != filter.Interest {
			continue
		}
		cp := *lead
		matched = append(matched, &cp)
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, filter), nil
}

// Len reports how many leads are stored.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}

func page(all []*Lead, filter ListFilter) []*Lead {
	if filter.Offset >= len(all) {
		return []*Lead{}
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end]
}
