package wizard

import "github.com/wolfman30/supplychain-leads/internal/leads"

// User-facing messages.
const (
	MsgNameRequired     = "Please enter your name (at least 2 characters)"
	MsgNameTooLong      = "Please keep your name to 100 characters or fewer"
	MsgEmailInvalid     = "Please enter a valid email address"
	MsgInterestRequired = "Please select an option"
	MsgSubmitSuccess    = "Assessment request submitted successfully!"
	MsgSubmitFailure    = "Something went wrong. Please try again."
)

// TotalSteps is the number of interactive steps.
const TotalSteps = 3

// StepCopy is the heading and input hint shown for one step.
type StepCopy struct {
	Number      int
	Field       Field
	Title       string
	Subtitle    string
	Placeholder string
}

// Steps lists the interactive steps in order.
var Steps = []StepCopy{
	{Number: 1, Field: FieldName, Title: "What's your name?", Subtitle: "Let's get acquainted", Placeholder: "Enter your full name"},
	{Number: 2, Field: FieldEmail, Title: "What's your email?", Subtitle: "I'll send your assessment here", Placeholder: "Enter your work email"},
	{Number: 3, Field: FieldInterest, Title: "What interests you?", Subtitle: "Help me understand your needs"},
}

// InterestOption is one selectable answer on the last step.
type InterestOption struct {
	Value       leads.Interest
	Label       string
	Description string
}

var InterestOptions = []InterestOption{
	{Value: leads.InterestOffer, Label: "Yes, I'm interested in the automation offer", Description: "Tell me more about the DOC Dashboard"},
	{Value: leads.InterestOther, Label: "I have something else in mind", Description: "Custom automation or consulting needs"},
}
