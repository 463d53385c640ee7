package wizard

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/supplychain-leads/internal/leads"
	"github.com/wolfman30/supplychain-leads/internal/observability/metrics"
	"github.com/wolfman30/supplychain-leads/pkg/logging"
)

var tracer = otel.Tracer("supplychain.internal.wizard")

// State is the position of the wizard in the capture flow.
type State string

const (
	StateStep1      State = "step1"
	StateStep2      State = "step2"
	StateStep3      State = "step3"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	switch s {
	case StateStep1, StateStep2, StateStep3, StateSubmitting, StateSubmitted:
		return true
	}
	return false
}

// Interactive reports whether the user may still edit and navigate.
func (s State) Interactive() bool {
	return s == StateStep1 || s == StateStep2 || s == StateStep3
}

// Field names a draft field; also the key of FieldErrors.
type Field string

const (
	FieldName         Field = "name"
	FieldEmail        Field = "email"
	FieldInterest     Field = "interest"
	FieldOtherDetails Field = "otherDetails"
)

// Draft is the in-progress lead. Values are kept as typed so that
// navigation never loses input.
type Draft struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Interest     string `json:"interest"`
	OtherDetails string `json:"otherDetails,omitempty"`
}

// Record is the subset of the draft sent to the sink.
func (d Draft) Record() leads.Record {
	return leads.Record{
		Name:     d.Name,
		Email:    d.Email,
		Interest: leads.Interest(d.Interest),
	}.Normalize()
}

// FieldErrors holds at most one inline message per field.
type FieldErrors map[Field]string

func (e FieldErrors) clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Snapshot is the serialisable form of a wizard, stored per session.
type Snapshot struct {
	State           State       `json:"state"`
	Draft           Draft       `json:"draft"`
	Errors          FieldErrors `json:"errors,omitempty"`
	SubmittingSince *time.Time  `json:"submittingSince,omitempty"`
}

// Sink accepts a complete lead record.
type Sink interface {
	SubmitLead(ctx context.Context, rec leads.Record) error
}

// Notifier shows transient messages to the user. Calls are fire-and-forget.
type Notifier interface {
	NotifySuccess(msg string)
	NotifyError(msg string)
}

type nopNotifier struct{}

func (nopNotifier) NotifySuccess(string) {}
func (nopNotifier) NotifyError(string)   {}

// SubmittingHook runs after the wizard enters StateSubmitting and before the
// sink is called. An error aborts the submission as a sink failure would.
type SubmittingHook func(ctx context.Context, snap Snapshot) error

// Option customizes a Wizard.
type Option func(*Wizard)

func WithLogger(logger *logging.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func WithMetrics(m *metrics.WizardMetrics) Option {
	return func(w *Wizard) { w.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// WithSubmittingHook persists or otherwise publishes the in-flight state.
func WithSubmittingHook(hook SubmittingHook) Option {
	return func(w *Wizard) { w.onSubmitting = hook }
}

// WithStaleSubmitAfter sets how long a restored StateSubmitting snapshot is
// trusted before the wizard falls back to the last step.
func WithStaleSubmitAfter(d time.Duration) Option {
	return func(w *Wizard) {
		if d > 0 {
			w.staleAfter = d
		}
	}
}

const defaultStaleSubmitAfter = 2 * time.Minute

// Wizard is the three-step lead capture flow: name, email, interest, then
// submit. A Wizard is owned by one session and is not safe for concurrent use.
type Wizard struct {
	state           State
	draft           Draft
	errors          FieldErrors
	submittingSince time.Time

	sink         Sink
	notifier     Notifier
	logger       *logging.Logger
	metrics      *metrics.WizardMetrics
	now          func() time.Time
	onSubmitting SubmittingHook
	staleAfter   time.Duration
}

// New starts an empty wizard on the first step.
func New(sink Sink, notifier Notifier, opts ...Option) *Wizard {
	if sink == nil {
		panic("wizard: sink required")
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	w := &Wizard{
		state:      StateStep1,
		errors:     FieldErrors{},
		sink:       sink,
		notifier:   notifier,
		logger:     logging.Default(),
		now:        time.Now,
		staleAfter: defaultStaleSubmitAfter,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Restore rebuilds a wizard from a stored snapshot. A submission that has been
// in flight longer than the stale threshold is treated as lost and the wizard
// returns to the last step with the draft intact.
func Restore(snap Snapshot, sink Sink, notifier Notifier, opts ...Option) (*Wizard, error) {
	if !snap.State.Valid() {
		return nil, ErrInvalidSnapshot
	}
	w := New(sink, notifier, opts...)
	w.state = snap.State
	w.draft = snap.Draft
	if snap.Errors != nil {
		w.errors = snap.Errors.clone()
	}
	if snap.State == StateSubmitting {
		if snap.SubmittingSince == nil || w.now().Sub(*snap.SubmittingSince) > w.staleAfter {
			w.logger.Warn("abandoning stale submission", "since", snap.SubmittingSince)
			w.transition(StateStep3)
		} else {
			w.submittingSince = *snap.SubmittingSince
		}
	}
	return w, nil
}

// Snapshot returns a copy of the wizard's state for storage.
func (w *Wizard) Snapshot() Snapshot {
	snap := Snapshot{
		State:  w.state,
		Draft:  w.draft,
		Errors: w.errors.clone(),
	}
	if w.state == StateSubmitting && !w.submittingSince.IsZero() {
		since := w.submittingSince
		snap.SubmittingSince = &since
	}
	return snap
}

func (w *Wizard) State() State { return w.state }

func (w *Wizard) Draft() Draft { return w.draft }

// Error returns the inline message for field, or "".
func (w *Wizard) Error(field Field) string { return w.errors[field] }

// Errors returns a copy of the current field errors.
func (w *Wizard) Errors() FieldErrors { return w.errors.clone() }

// CanGoBack reports whether Back would move to an earlier step.
func (w *Wizard) CanGoBack() bool {
	return w.state == StateStep2 || w.state == StateStep3
}

// CanAdvance reports whether Next is enabled.
func (w *Wizard) CanAdvance() bool { return w.state.Interactive() }

// StepNumber is the 1-based step shown in the progress indicator.
func (w *Wizard) StepNumber() int {
	switch w.state {
	case StateStep1:
		return 1
	case StateStep2:
		return 2
	default:
		return TotalSteps
	}
}

func (w *Wizard) TotalSteps() int { return TotalSteps }

// SetName updates the draft name. Validation waits for Next.
func (w *Wizard) SetName(name string) error {
	if err := w.editable("set_name"); err != nil {
		return err
	}
	w.draft.Name = name
	return nil
}

func (w *Wizard) SetEmail(email string) error {
	if err := w.editable("set_email"); err != nil {
		return err
	}
	w.draft.Email = email
	return nil
}

// SetInterest stores the raw selection; only "offer" and "other" pass step 3.
func (w *Wizard) SetInterest(interest string) error {
	if err := w.editable("set_interest"); err != nil {
		return err
	}
	w.draft.Interest = interest
	return nil
}

// SetOtherDetails stores optional free text. It is bounded here and never
// submitted.
func (w *Wizard) SetOtherDetails(details string) error {
	if err := w.editable("set_other_details"); err != nil {
		return err
	}
	if err := leads.ValidateOtherDetails(details); err != nil {
		return err
	}
	w.draft.OtherDetails = details
	return nil
}

// Next validates the current step. On success it advances; on the last step
// it submits the draft to the sink exactly once.
func (w *Wizard) Next(ctx context.Context) error {
	if err := w.editable("next"); err != nil {
		return err
	}

	w.errors = FieldErrors{}
	if verr := w.validateStep(); verr != nil {
		w.errors[verr.Field] = verr.Message
		w.metrics.ObserveValidationFailure(string(verr.Field))
		return verr
	}

	switch w.state {
	case StateStep1:
		w.draft.Name = strings.TrimSpace(w.draft.Name)
		w.transition(StateStep2)
	case StateStep2:
		w.draft.Email = strings.TrimSpace(w.draft.Email)
		w.transition(StateStep3)
	case StateStep3:
		return w.submit(ctx)
	}
	return nil
}

// Back returns to the previous step, keeping every entered value.
func (w *Wizard) Back() error {
	if err := w.editable("back"); err != nil {
		return err
	}
	switch w.state {
	case StateStep2:
		delete(w.errors, FieldEmail)
		w.transition(StateStep1)
	case StateStep3:
		delete(w.errors, FieldInterest)
		w.transition(StateStep2)
	default:
		w.metrics.ObserveBlocked("back", "first_step")
		return ErrBackDisabled
	}
	return nil
}

func (w *Wizard) editable(action string) error {
	switch w.state {
	case StateSubmitting:
		w.metrics.ObserveBlocked(action, "in_flight")
		return ErrSubmitInFlight
	case StateSubmitted:
		w.metrics.ObserveBlocked(action, "submitted")
		return ErrSubmitted
	}
	return nil
}

func (w *Wizard) validateStep() *ValidationError {
	switch w.state {
	case StateStep1:
		switch err := leads.ValidateName(w.draft.Name); {
		case errors.Is(err, leads.ErrNameTooLong):
			return &ValidationError{Field: FieldName, Message: MsgNameTooLong}
		case err != nil:
			return &ValidationError{Field: FieldName, Message: MsgNameRequired}
		}
	case StateStep2:
		if err := leads.ValidateEmail(w.draft.Email); err != nil {
			return &ValidationError{Field: FieldEmail, Message: MsgEmailInvalid}
		}
	case StateStep3:
		if err := leads.ValidateInterest(w.draft.Interest); err != nil {
			return &ValidationError{Field: FieldInterest, Message: MsgInterestRequired}
		}
	}
	return nil
}

func (w *Wizard) submit(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "wizard.submit")
	defer span.End()
	span.SetAttributes(attribute.String("lead.interest", w.draft.Interest))

	w.transition(StateSubmitting)
	w.submittingSince = w.now()

	if w.onSubmitting != nil {
		if err := w.onSubmitting(ctx, w.Snapshot()); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "submitting hook failed")
			return w.fail(err)
		}
	}

	rec := w.draft.Record()
	if err := w.sink.SubmitLead(ctx, rec); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sink rejected lead")
		return w.fail(err)
	}

	// The confirmation shows exactly what was stored.
	w.draft.Name = rec.Name
	w.draft.Email = rec.Email
	w.submittingSince = time.Time{}
	w.errors = FieldErrors{}
	w.transition(StateSubmitted)
	w.notifier.NotifySuccess(MsgSubmitSuccess)
	return nil
}

func (w *Wizard) fail(err error) error {
	w.logger.Error("lead submission failed", "error", err)
	w.submittingSince = time.Time{}
	w.transition(StateStep3)
	w.notifier.NotifyError(MsgSubmitFailure)
	return &SubmitError{Err: err}
}

func (w *Wizard) transition(to State) {
	from := w.state
	w.state = to
	w.metrics.ObserveTransition(string(from), string(to))
	w.logger.Debug("wizard transition", "from", from, "to", to)
}
