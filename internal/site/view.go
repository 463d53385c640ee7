package site

import (
	"github.com/wolfman30/supplychain-leads/internal/wizard"
)

// GetStartedAnchor is the fragment every "Get started" control scrolls to.
const GetStartedAnchor = "get-started"

// ProgressStep is one dot of the progress indicator.
type ProgressStep struct {
	Number  int
	Done    bool
	Current bool
	Last    bool
}

// OptionView is a selectable interest option.
type OptionView struct {
	wizard.InterestOption
	Selected bool
}

// WizardView is everything the template needs to draw the form.
type WizardView struct {
	State      wizard.State
	Progress   []ProgressStep
	Step       wizard.StepCopy
	Value      string
	Error      string
	Options    []OptionView
	CanGoBack  bool
	NextLabel  string
	NextActive bool
	Submitted  bool
	Name       string
	Email      string
}

// NewWizardView projects a wizard snapshot onto the form layout.
func NewWizardView(snap wizard.Snapshot) WizardView {
	view := WizardView{
		State: snap.State,
		Name:  snap.Draft.Name,
		Email: snap.Draft.Email,
	}
	if snap.State == wizard.StateSubmitted {
		view.Submitted = true
		return view
	}

	step := stepNumber(snap.State)
	for n := 1; n <= wizard.TotalSteps; n++ {
		view.Progress = append(view.Progress, ProgressStep{
			Number:  n,
			Done:    n < step,
			Current: n == step,
			Last:    n == wizard.TotalSteps,
		})
	}
	view.Step = wizard.Steps[step-1]
	view.Error = snap.Errors[view.Step.Field]
	view.CanGoBack = snap.State == wizard.StateStep2 || snap.State == wizard.StateStep3
	view.NextActive = snap.State.Interactive()

	switch view.Step.Field {
	case wizard.FieldName:
		view.Value = snap.Draft.Name
	case wizard.FieldEmail:
		view.Value = snap.Draft.Email
	case wizard.FieldInterest:
		view.Value = snap.Draft.Interest
		for _, opt := range wizard.InterestOptions {
			view.Options = append(view.Options, OptionView{
				InterestOption: opt,
				Selected:       string(opt.Value) == snap.Draft.Interest,
			})
		}
	}

	switch {
	case snap.State == wizard.StateSubmitting:
		view.NextLabel = "Submitting..."
	case step == wizard.TotalSteps:
		view.NextLabel = "Submit"
	default:
		view.NextLabel = "Continue"
	}
	return view
}

func stepNumber(state wizard.State) int {
	switch state {
	case wizard.StateStep1:
		return 1
	case wizard.StateStep2:
		return 2
	default:
		return wizard.TotalSteps
	}
}
