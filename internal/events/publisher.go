package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/supplychain-leads/internal/leads"
	"github.com/wolfman30/supplychain-leads/pkg/logging"
)

// Publisher delivers envelopes to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
}

type sqsAPI interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher sends each envelope as one JSON message.
type SQSPublisher struct {
	client   sqsAPI
	queueURL string
}

func NewSQSPublisher(client sqsAPI, queueURL string) *SQSPublisher {
	if client == nil {
		panic("events: SQS client cannot be nil")
	}
	if queueURL == "" {
		panic("events: SQS queueURL cannot be empty")
	}
	return &SQSPublisher{client: client, queueURL: queueURL}
}

func (p *SQSPublisher) Publish(ctx context.Context, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("events: marshal envelope: %w", err)
	}
	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {DataType: aws.String("String"), StringValue: aws.String(env.EventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("events: failed to send SQS message: %w", err)
	}
	return nil
}

// NopPublisher drops envelopes; used when no queue is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Envelope) error { return nil }

// LeadCreatedHook publishes lead.created.v1 after a lead is stored. The
// envelope carries the row's created_at and the HTTP request id, when the
// lead came in over HTTP.
type LeadCreatedHook struct {
	publisher Publisher
	logger    *logging.Logger
}

func NewLeadCreatedHook(publisher Publisher, logger *logging.Logger) *LeadCreatedHook {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadCreatedHook{publisher: publisher, logger: logger}
}

func (h *LeadCreatedHook) Name() string { return "sqs" }

func (h *LeadCreatedHook) LeadCreated(ctx context.Context, lead *leads.Lead) error {
	env, err := NewEnvelope(lead.ID, LeadCreatedV1{
		LeadID:    lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Interest:  string(lead.Interest),
		CreatedAt: lead.CreatedAt,
		Source:    "website",
	}, WithOccurredAt(lead.CreatedAt), WithCorrelationID(middleware.GetReqID(ctx)))
	if err != nil {
		return err
	}
	if err := h.publisher.Publish(ctx, env); err != nil {
		return err
	}
	h.logger.Debug("lead event published", "lead_id", lead.ID, "event_id", env.EventID, "correlation_id", env.CorrelationID)
	return nil
}

var _ leads.CreatedHook = (*LeadCreatedHook)(nil)
