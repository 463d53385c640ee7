package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wolfman30/supplychain-leads/internal/leads"
	"github.com/wolfman30/supplychain-leads/pkg/logging"
)

const (
	leadSubjectTemplate = `New assessment request from {{.Name}}`
	leadBodyTemplate    = `A new lead came in through the assessment form.

Name:     {{.Name}}
Email:    {{.Email}}
Interest: {{.InterestLabel}}
Received: {{.Received}}
{{- if .AdminURL}}

All leads: {{.AdminURL}}
{{- end}}
`
)

var interestLabels = map[leads.Interest]string{
	leads.InterestOffer: "Automation offer (DOC Dashboard)",
	leads.InterestOther: "Something else (custom automation or consulting)",
}

// LeadNotifier emails the operator when a lead is stored.
type LeadNotifier struct {
	email    EmailSender
	to       string
	adminURL string
	logger   *logging.Logger
}

// NewLeadNotifier returns nil when there is no sender or recipient.
func NewLeadNotifier(email EmailSender, to, publicBaseURL string, logger *logging.Logger) *LeadNotifier {
	if email == nil || to == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	n := &LeadNotifier{email: email, to: to, logger: logger}
	if publicBaseURL != "" {
		n.adminURL = publicBaseURL + "/admin/leads"
	}
	return n
}

// Name identifies the hook in metrics and logs.
func (n *LeadNotifier) Name() string { return "email" }

// LeadCreated implements leads.CreatedHook.
func (n *LeadNotifier) LeadCreated(ctx context.Context, lead *leads.Lead) error {
	return n.NotifyNewLead(ctx, lead)
}

// NotifyNewLead renders and sends the operator email for lead.
func (n *LeadNotifier) NotifyNewLead(ctx context.Context, lead *leads.Lead) error {
	if lead == nil {
		return fmt.Errorf("notify: lead required")
	}
	label, ok := interestLabels[lead.Interest]
	if !ok {
		label = string(lead.Interest)
	}
	data := map[string]any{
		"Name":          lead.Name,
		"Email":         lead.Email,
		"InterestLabel": label,
		"Received":      lead.CreatedAt.UTC().Format(time.RFC1123),
		"AdminURL":      n.adminURL,
	}

	subject, err := render("lead_subject", leadSubjectTemplate, data)
	if err != nil {
		return err
	}
	body, err := render("lead_body", leadBodyTemplate, data)
	if err != nil {
		return err
	}

	if err := n.email.Send(ctx, EmailMessage{To: n.to, Subject: subject, Body: body}); err != nil {
		return fmt.Errorf("notify: lead email: %w", err)
	}
	n.logger.Debug("lead notification sent", "lead_id", lead.ID, "to", n.to)
	return nil
}

var _ leads.CreatedHook = (*LeadNotifier)(nil)
