package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wolfman30/supplychain-leads/internal/leads"
	"github.com/wolfman30/supplychain-leads/internal/observability/metrics"
	"github.com/wolfman30/supplychain-leads/pkg/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSink struct {
	err     error
	records []leads.Record
}

func (s *fakeSink) SubmitLead(ctx context.Context, rec leads.Record) error {
	s.records = append(s.records, rec)
	return s.err
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) NotifySuccess(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) NotifyError(msg string)   { n.errors = append(n.errors, msg) }

func newTestWizard(sink Sink, notifier Notifier, opts ...Option) *Wizard {
	opts = append([]Option{WithLogger(logging.New("error"))}, opts...)
	return New(sink, notifier, opts...)
}

func advanceTo(t *testing.T, w *Wizard, target State) {
	t.Helper()
	ctx := context.Background()
	if target == StateStep1 {
		return
	}
	require.NoError(t, w.SetName("Al"))
	require.NoError(t, w.Next(ctx))
	if target == StateStep2 {
		return
	}
	require.NoError(t, w.SetEmail("a@b.com"))
	require.NoError(t, w.Next(ctx))
}

func TestNewStartsEmptyOnStepOne(t *testing.T) {
	w := newTestWizard(&fakeSink{}, nil)

	assert.Equal(t, StateStep1, w.State())
	assert.Equal(t, Draft{}, w.Draft())
	assert.Empty(t, w.Errors())
	assert.False(t, w.CanGoBack())
	assert.True(t, w.CanAdvance())
	assert.Equal(t, 1, w.StepNumber())
	assert.Equal(t, 3, w.TotalSteps())
}

func TestNameStep(t *testing.T) {
	ctx := context.Background()

	t.Run("short name stays with message", func(t *testing.T) {
		w := newTestWizard(&fakeSink{}, nil)
		require.NoError(t, w.SetName("A"))

		err := w.Next(ctx)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, FieldName, verr.Field)
		assert.Equal(t, StateStep1, w.State())
		assert.Equal(t, "Please enter your name (at least 2 characters)", w.Error(FieldName))
	})

	t.Run("two characters advance", func(t *testing.T) {
		w := newTestWizard(&fakeSink{}, nil)
		require.NoError(t, w.SetName("Al"))

		require.NoError(t, w.Next(ctx))
		assert.Equal(t, StateStep2, w.State())
		assert.Empty(t, w.Error(FieldName))
	})

	t.Run("names under two characters never advance", func(t *testing.T) {
		for _, name := range []string{"", " ", "A", "  B  ", "\t\n", "é"} {
			w := newTestWizard(&fakeSink{}, nil)
			require.NoError(t, w.SetName(name))
			for i := 0; i < 3; i++ {
				require.ErrorIs(t, w.Next(ctx), ErrValidation)
			}
			assert.Equal(t, StateStep1, w.State(), "name %q", name)
		}
	})

	t.Run("name over limit", func(t *testing.T) {
		w := newTestWizard(&fakeSink{}, nil)
		require.NoError(t, w.SetName(strings.Repeat("n", 101)))

		require.ErrorIs(t, w.Next(ctx), ErrValidation)
		assert.Equal(t, MsgNameTooLong, w.Error(FieldName))
	})
}

func TestEmailStep(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(&fakeSink{}, nil)
	advanceTo(t, w, StateStep2)

	require.NoError(t, w.SetEmail("not-an-email"))
	require.ErrorIs(t, w.Next(ctx), ErrValidation)
	assert.Equal(t, StateStep2, w.State())
	assert.Equal(t, "Please enter a valid email address", w.Error(FieldEmail))

	require.NoError(t, w.SetEmail("a@b.com"))
	require.NoError(t, w.Next(ctx))
	assert.Equal(t, StateStep3, w.State())
	assert.Empty(t, w.Errors())
}

func TestInvalidEmailsNeverAdvance(t *testing.T) {
	for _, email := range []string{"", "plain", "a@", "@b.com", "a@@b.com"} {
		w := newTestWizard(&fakeSink{}, nil)
		advanceTo(t, w, StateStep2)
		require.NoError(t, w.SetEmail(email))

		require.ErrorIs(t, w.Next(context.Background()), ErrValidation)
		assert.Equal(t, StateStep2, w.State(), "email %q", email)
	}
}

func TestInterestStepRequiresExactValue(t *testing.T) {
	for _, interest := range []string{"", "Offer", "OTHER", " offer", "maybe"} {
		sink := &fakeSink{}
		w := newTestWizard(sink, nil)
		advanceTo(t, w, StateStep3)
		require.NoError(t, w.SetInterest(interest))

		require.ErrorIs(t, w.Next(context.Background()), ErrValidation)
		assert.Equal(t, StateStep3, w.State())
		assert.Equal(t, "Please select an option", w.Error(FieldInterest))
		assert.Empty(t, sink.records, "interest %q must not submit", interest)
	}

	for _, interest := range []string{"offer", "other"} {
		sink := &fakeSink{}
		w := newTestWizard(sink, nil)
		advanceTo(t, w, StateStep3)
		require.NoError(t, w.SetInterest(interest))

		require.NoError(t, w.Next(context.Background()))
		require.Len(t, sink.records, 1)
		assert.Equal(t, leads.Interest(interest), sink.records[0].Interest)
	}
}

func TestBackPreservesValues(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(&fakeSink{}, nil)
	advanceTo(t, w, StateStep3)

	require.NoError(t, w.Back())
	assert.Equal(t, StateStep2, w.State())
	assert.Equal(t, "a@b.com", w.Draft().Email)

	require.NoError(t, w.Back())
	assert.Equal(t, StateStep1, w.State())
	assert.Equal(t, "Al", w.Draft().Name)

	// Revisiting without retyping advances on the retained values.
	require.NoError(t, w.Next(ctx))
	require.NoError(t, w.Next(ctx))
	assert.Equal(t, StateStep3, w.State())
	assert.Equal(t, Draft{Name: "Al", Email: "a@b.com"}, w.Draft())
}

func TestBackDisabledOnFirstStep(t *testing.T) {
	reg := prometheus.NewRegistry()
	w := newTestWizard(&fakeSink{}, nil, WithMetrics(metrics.NewWizardMetrics(reg)))

	require.ErrorIs(t, w.Back(), ErrBackDisabled)
	assert.Equal(t, StateStep1, w.State())
}

func TestBackClearsErrorOfStepLeft(t *testing.T) {
	w := newTestWizard(&fakeSink{}, nil)
	advanceTo(t, w, StateStep2)
	require.NoError(t, w.SetEmail("nope"))
	require.ErrorIs(t, w.Next(context.Background()), ErrValidation)

	require.NoError(t, w.Back())
	assert.Empty(t, w.Error(FieldEmail))
	assert.Equal(t, "nope", w.Draft().Email)
}

func TestSubmitSuccess(t *testing.T) {
	sink := &fakeSink{}
	notifier := &recordingNotifier{}
	w := newTestWizard(sink, notifier)
	advanceTo(t, w, StateStep3)
	require.NoError(t, w.SetInterest("offer"))

	require.NoError(t, w.Next(context.Background()))

	assert.Equal(t, StateSubmitted, w.State())
	assert.Equal(t, "Al", w.Draft().Name)
	assert.Equal(t, "a@b.com", w.Draft().Email)
	assert.Empty(t, w.Errors())
	assert.False(t, w.CanAdvance())
	assert.False(t, w.CanGoBack())
	if diff := cmp.Diff([]leads.Record{{Name: "Al", Email: "a@b.com", Interest: leads.InterestOffer}}, sink.records); diff != "" {
		t.Fatalf("submitted records mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Assessment request submitted successfully!"}, notifier.successes)
	assert.Empty(t, notifier.errors)
}

func TestSubmitFailureReturnsToLastStep(t *testing.T) {
	sink := &fakeSink{err: errors.New("insert rejected")}
	notifier := &recordingNotifier{}
	w := newTestWizard(sink, notifier)
	advanceTo(t, w, StateStep3)
	require.NoError(t, w.SetInterest("other"))
	before := w.Draft()

	err := w.Next(context.Background())

	require.ErrorIs(t, err, ErrSubmitFailed)
	assert.ErrorContains(t, err, "insert rejected")
	assert.Equal(t, StateStep3, w.State())
	assert.Equal(t, before, w.Draft())
	assert.True(t, w.CanAdvance())
	assert.Equal(t, []string{"Something went wrong. Please try again."}, notifier.errors)

	// Retry is user initiated and reaches the sink again.
	sink.err = nil
	require.NoError(t, w.Next(context.Background()))
	assert.Equal(t, StateSubmitted, w.State())
	assert.Len(t, sink.records, 2)
}

func TestSubmittedIsTerminal(t *testing.T) {
	sink := &fakeSink{}
	w := newTestWizard(sink, nil)
	advanceTo(t, w, StateStep3)
	require.NoError(t, w.SetInterest("offer"))
	require.NoError(t, w.Next(context.Background()))

	assert.ErrorIs(t, w.Next(context.Background()), ErrSubmitted)
	assert.ErrorIs(t, w.Back(), ErrSubmitted)
	assert.ErrorIs(t, w.SetName("Bob"), ErrSubmitted)
	assert.Equal(t, StateSubmitted, w.State())
	assert.Len(t, sink.records, 1)
}

func TestSubmittingHookSeesInFlightState(t *testing.T) {
	fixed := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	var seen Snapshot
	sink := &fakeSink{}
	w := newTestWizard(sink, nil,
		WithClock(func() time.Time { return fixed }),
		WithSubmittingHook(func(ctx context.Context, snap Snapshot) error {
			seen = snap
			return nil
		}),
	)
	advanceTo(t, w, StateStep3)
	require.NoError(t, w.SetInterest("offer"))

	require.NoError(t, w.Next(context.Background()))

	assert.Equal(t, StateSubmitting, seen.State)
	require.NotNil(t, seen.SubmittingSince)
	assert.Equal(t, fixed, *seen.SubmittingSince)
}

func TestSubmittingHookFailureAbortsSubmission(t *testing.T) {
	sink := &fakeSink{}
	notifier := &recordingNotifier{}
	w := newTestWizard(sink, notifier, WithSubmittingHook(func(context.Context, Snapshot) error {
		return errors.New("session store down")
	}))
	advanceTo(t, w, StateStep3)
	require.NoError(t, w.SetInterest("offer"))

	require.ErrorIs(t, w.Next(context.Background()), ErrSubmitFailed)
	assert.Empty(t, sink.records)
	assert.Equal(t, StateStep3, w.State())
	assert.Len(t, notifier.errors, 1)
}

func TestInFlightRejectsActions(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	since := now.Add(-10 * time.Second)
	sink := &fakeSink{}
	w, err := Restore(Snapshot{
		State:           StateSubmitting,
		Draft:           Draft{Name: "Al", Email: "a@b.com", Interest: "offer"},
		SubmittingSince: &since,
	}, sink, nil, WithClock(func() time.Time { return now }), WithLogger(logging.New("error")))
	require.NoError(t, err)

	assert.Equal(t, StateSubmitting, w.State())
	assert.ErrorIs(t, w.Next(context.Background()), ErrSubmitInFlight)
	assert.ErrorIs(t, w.Back(), ErrSubmitInFlight)
	assert.ErrorIs(t, w.SetEmail("x@y.com"), ErrSubmitInFlight)
	assert.False(t, w.CanAdvance())
	assert.Empty(t, sink.records)
}

func TestRestoreStaleSubmissionFallsBack(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	since := now.Add(-5 * time.Minute)
	w, err := Restore(Snapshot{
		State:           StateSubmitting,
		Draft:           Draft{Name: "Al", Email: "a@b.com", Interest: "offer"},
		SubmittingSince: &since,
	}, &fakeSink{}, nil,
		WithClock(func() time.Time { return now }),
		WithStaleSubmitAfter(time.Minute),
		WithLogger(logging.New("error")),
	)
	require.NoError(t, err)

	assert.Equal(t, StateStep3, w.State())
	assert.True(t, w.CanAdvance())
	assert.Nil(t, w.Snapshot().SubmittingSince)
}

func TestRestoreRejectsUnknownState(t *testing.T) {
	_, err := Restore(Snapshot{State: "step9"}, &fakeSink{}, nil)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestSnapshotRoundTripThroughRestore(t *testing.T) {
	w := newTestWizard(&fakeSink{}, nil)
	advanceTo(t, w, StateStep2)
	require.NoError(t, w.SetEmail("bad"))
	require.ErrorIs(t, w.Next(context.Background()), ErrValidation)

	snap := w.Snapshot()
	restored, err := Restore(snap, &fakeSink{}, nil)
	require.NoError(t, err)

	if diff := cmp.Diff(snap, restored.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	// Mutating the snapshot must not leak into the restored wizard.
	snap.Errors[FieldEmail] = "changed"
	assert.Equal(t, MsgEmailInvalid, restored.Error(FieldEmail))
}

func TestSetOtherDetailsIsBoundedAndNotSubmitted(t *testing.T) {
	sink := &fakeSink{}
	w := newTestWizard(sink, nil)

	require.ErrorIs(t, w.SetOtherDetails(strings.Repeat("x", 501)), leads.ErrOtherDetailsTooLong)
	require.NoError(t, w.SetOtherDetails("need help with cold chain"))
	advanceTo(t, w, StateStep3)
	require.NoError(t, w.SetInterest("other"))
	require.NoError(t, w.Next(context.Background()))

	assert.Equal(t, "need help with cold chain", w.Draft().OtherDetails)
	require.Len(t, sink.records, 1)
	assert.Equal(t, leads.Record{Name: "Al", Email: "a@b.com", Interest: leads.InterestOther}, sink.records[0])
}

func TestDraftRecordTrimsWhitespace(t *testing.T) {
	d := Draft{Name: "  Al ", Email: " a@b.com\n", Interest: "offer"}
	assert.Equal(t, leads.Record{Name: "Al", Email: "a@b.com", Interest: leads.InterestOffer}, d.Record())
}

func TestSubmittedDraftMatchesStoredRecord(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	w := newTestWizard(sink, nil)

	require.NoError(t, w.SetName("  Al "))
	require.NoError(t, w.Next(ctx))
	assert.Equal(t, "Al", w.Draft().Name)

	require.NoError(t, w.SetEmail(" a@b.com\n"))
	require.NoError(t, w.Next(ctx))
	assert.Equal(t, "a@b.com", w.Draft().Email)

	require.NoError(t, w.SetInterest("offer"))
	require.NoError(t, w.Next(ctx))

	require.Len(t, sink.records, 1)
	assert.Equal(t, sink.records[0].Name, w.Draft().Name)
	assert.Equal(t, sink.records[0].Email, w.Draft().Email)
	assert.Equal(t, sink.records[0].Name, w.Snapshot().Draft.Name)
}

func TestNewPanicsWithoutSink(t *testing.T) {
	assert.Panics(t, func() { New(nil, nil) })
}
