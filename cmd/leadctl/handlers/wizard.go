// Package handlers implements the leadctl commands.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/wolfman30/supplychain-leads/internal/leads"
	"github.com/wolfman30/supplychain-leads/internal/wizard"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22c55e"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d4af37"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// Question is one prompt of the terminal wizard.
type Question struct {
	Step      wizard.StepCopy
	Value     string
	Error     string
	CanGoBack bool
	NextLabel string
}

// Answer is the user's reply to a Question.
type Answer struct {
	Value string
	Back  bool
}

// Prompter asks a single Question.
type Prompter interface {
	Ask(ctx context.Context, q Question) (Answer, error)
}

// terminalNotifier prints toasts as they happen.
type terminalNotifier struct {
	out io.Writer
}

func (n terminalNotifier) NotifySuccess(msg string) {
	fmt.Fprintln(n.out, successStyle.Render(msg))
}

func (n terminalNotifier) NotifyError(msg string) {
	fmt.Fprintln(n.out, errorStyle.Render(msg))
}

// RunWizard drives the lead wizard from the terminal until the lead is
// submitted or the prompter fails.
func RunWizard(ctx context.Context, sink wizard.Sink, prompter Prompter, out io.Writer) error {
	wiz := wizard.New(sink, terminalNotifier{out: out})

	for wiz.State() != wizard.StateSubmitted {
		step := wizard.Steps[wiz.StepNumber()-1]
		label := "Continue"
		if step.Number == wizard.TotalSteps {
			label = "Submit"
		}

		ans, err := prompter.Ask(ctx, Question{
			Step:      step,
			Value:     draftValue(wiz.Draft(), step.Field),
			Error:     wiz.Error(step.Field),
			CanGoBack: wiz.CanGoBack(),
			NextLabel: label,
		})
		if err != nil {
			return err
		}
		if ans.Back {
			if err := wiz.Back(); err != nil && !errors.Is(err, wizard.ErrBackDisabled) {
				return err
			}
			continue
		}

		if err := setField(wiz, step.Field, ans.Value); err != nil {
			return err
		}
		err = wiz.Next(ctx)
		switch {
		case err == nil:
		case errors.Is(err, wizard.ErrValidation), errors.Is(err, wizard.ErrSubmitFailed):
			// The error is shown with the next prompt of the same step.
		default:
			return err
		}
	}

	draft := wiz.Draft()
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Thank You, %s!", draft.Name)))
	fmt.Fprintln(out, "I'll review your information and get back to you within 24-48 hours.")
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("Check your inbox at %s for next steps.", draft.Email)))
	return nil
}

func draftValue(d wizard.Draft, field wizard.Field) string {
	switch field {
	case wizard.FieldName:
		return d.Name
	case wizard.FieldEmail:
		return d.Email
	case wizard.FieldInterest:
		return d.Interest
	}
	return ""
}

func setField(wiz *wizard.Wizard, field wizard.Field, value string) error {
	switch field {
	case wizard.FieldName:
		return wiz.SetName(value)
	case wizard.FieldEmail:
		return wiz.SetEmail(value)
	case wizard.FieldInterest:
		return wiz.SetInterest(value)
	}
	return fmt.Errorf("unknown wizard field %q", field)
}

// HuhPrompter asks questions with charmbracelet/huh forms.
type HuhPrompter struct {
	Accessible bool
}

func (p HuhPrompter) Ask(ctx context.Context, q Question) (Answer, error) {
	value := q.Value
	forward := true

	description := q.Step.Subtitle
	if q.Error != "" {
		description = q.Error
	}

	var fields []huh.Field
	if q.Step.Field == wizard.FieldInterest {
		options := make([]huh.Option[string], 0, len(wizard.InterestOptions))
		for _, opt := range wizard.InterestOptions {
			options = append(options, huh.NewOption(opt.Label+" - "+opt.Description, string(opt.Value)))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title(q.Step.Title).
			Description(description).
			Options(options...).
			Value(&value))
	} else {
		fields = append(fields, huh.NewInput().
			Title(q.Step.Title).
			Description(description).
			Placeholder(q.Step.Placeholder).
			Value(&value))
	}
	if q.CanGoBack {
		fields = append(fields, huh.NewConfirm().
			Affirmative(q.NextLabel).
			Negative("Back").
			Value(&forward))
	}

	form := huh.NewForm(
		huh.NewGroup(fields...).Title(fmt.Sprintf("Step %d of %d", q.Step.Number, wizard.TotalSteps)),
	).WithAccessible(p.Accessible)
	if err := form.RunWithContext(ctx); err != nil {
		return Answer{}, err
	}
	return Answer{Value: value, Back: !forward}, nil
}

// NewSink returns the remote sink used by the wizard, or a dry-run sink that
// only prints the record.
func NewSink(serverURL string, dryRun bool, out io.Writer) wizard.Sink {
	if dryRun {
		return dryRunSink{out: out}
	}
	return leads.NewClient(serverURL)
}

type dryRunSink struct {
	out io.Writer
}

func (s dryRunSink) SubmitLead(_ context.Context, rec leads.Record) error {
	fmt.Fprintln(s.out, dimStyle.Render(fmt.Sprintf("dry run: name=%q email=%q interest=%s", rec.Name, rec.Email, rec.Interest)))
	return nil
}
