package leads

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/supplychain-leads/internal/observability/metrics"
	"github.com/wolfman30/supplychain-leads/pkg/logging"
)

var sinkTracer = otel.Tracer("supplychain.internal.leads.sink")

const defaultHookTimeout = 5 * time.Second

// CreatedHook runs after a lead has been stored. Failures are logged and never
// undo the insert.
type CreatedHook interface {
	Name() string
	LeadCreated(ctx context.Context, lead *Lead) error
}

// Sink validates records, writes them to the repository and fans out hooks.
// It is the remote sink the lead wizard submits to.
type Sink struct {
	repo    Repository
	store   string
	hooks       []CreatedHook
	hookTimeout time.Duration
	metrics     *metrics.LeadMetrics
	logger      *logging.Logger
}

// SinkOption customizes a Sink.
type SinkOption func(*Sink)

// WithHooks registers post-insert hooks, run in order.
func WithHooks(hooks ...CreatedHook) SinkOption {
	return func(s *Sink) {
		for _, h := range hooks {
			if h != nil {
				s.hooks = append(s.hooks, h)
			}
		}
	}
}

// WithHookTimeout bounds each hook call. Non-positive values keep the default.
func WithHookTimeout(d time.Duration) SinkOption {
	return func(s *Sink) {
		if d > 0 {
			s.hookTimeout = d
		}
	}
}

// WithMetrics records insert counts and latency.
func WithMetrics(m *metrics.LeadMetrics) SinkOption {
	return func(s *Sink) { s.metrics = m }
}

// WithStoreLabel names the backing store in metrics and logs.
func WithStoreLabel(store string) SinkOption {
	return func(s *Sink) { s.store = store }
}

// NewSink wraps repo.
func NewSink(repo Repository, logger *logging.Logger, opts ...SinkOption) *Sink {
	if repo == nil {
		panic("leads: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Sink{repo: repo, store: "memory", hookTimeout: defaultHookTimeout, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitLead inserts rec and reports only success or failure.
func (s *Sink) SubmitLead(ctx context.Context, rec Record) error {
	_, err := s.Create(ctx, rec)
	return err
}

// Create validates and inserts rec, then runs the registered hooks.
func (s *Sink) Create(ctx context.Context, rec Record) (*Lead, error) {
	ctx, span := sinkTracer.Start(ctx, "leads.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("leads.store", s.store),
		attribute.String("leads.interest", string(rec.Interest)),
	)

	rec = rec.Normalize()
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	lead, err := s.repo.Insert(ctx, rec)
	s.metrics.ObserveInsert(s.store, err == nil, time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		s.logger.Error("lead insert failed", "error", err, "store", s.store)
		return nil, err
	}
	s.logger.Info("lead created", "id", lead.ID, "interest", lead.Interest, "store", s.store)

	for _, hook := range s.hooks {
		if err := s.runHook(ctx, hook, lead); err != nil {
			s.metrics.ObserveHookFailure(hook.Name())
			s.logger.Warn("lead hook failed", "hook", hook.Name(), "lead_id", lead.ID, "error", err)
		}
	}
	return lead, nil
}

// runHook gives each hook its own deadline so a slow provider cannot hold
// the submit request, or the session lock behind it, for long.
func (s *Sink) runHook(ctx context.Context, hook CreatedHook, lead *Lead) error {
	ctx, cancel := context.WithTimeout(ctx, s.hookTimeout)
	defer cancel()
	return hook.LeadCreated(ctx, lead)
}
