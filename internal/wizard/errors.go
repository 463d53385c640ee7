package wizard

import "errors"

var (
	// ErrValidation is matched by every *ValidationError returned from Next.
	ErrValidation = errors.New("wizard: step validation failed")

	// ErrSubmitInFlight is returned for any action while the lead is being submitted
	ErrSubmitInFlight = errors.New("wizard: submission in flight")

	// ErrSubmitted is returned for any action once the lead has been accepted
	ErrSubmitted = errors.New("wizard: already submitted")

	// ErrBackDisabled is returned by Back on the first step
	ErrBackDisabled = errors.New("wizard: back is disabled on the first step")

	// ErrSubmitFailed is matched by every *SubmitError returned from Next.
	ErrSubmitFailed = errors.New("wizard: submission failed")

	// ErrInvalidSnapshot is returned by Restore for snapshots with an unknown state
	ErrInvalidSnapshot = errors.New("wizard: invalid snapshot")
)

// ValidationError carries the inline message set for the failing field.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return "wizard: " + string(e.Field) + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// SubmitError wraps the sink failure; the wizard is back on the last step.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return "wizard: submission failed: " + e.Err.Error()
}

func (e *SubmitError) Unwrap() error { return e.Err }

func (e *SubmitError) Is(target error) bool { return target == ErrSubmitFailed }
