package stubapi

import (
	"context"
	"time"

	"corp-onboarding/internal/common/aws"
)

const eventProfileCreated = "profile.created"

// EventPublisher announces stored profiles to downstream consumers.
type EventPublisher interface {
	ProfileCreated(ctx context.Context, profile StoredProfile) error
}

// profileCreatedEvent leaves out names and phone number.
type profileCreatedEvent struct {
	ID                string    `json:"id"`
	CorporationNumber string    `json:"corporationNumber"`
	CreatedAt         time.Time `json:"createdAt"`
}

// SNSEvents publishes profile events to an SNS topic.
type SNSEvents struct {
	client *aws.SNSClient
}

func NewSNSEvents(client *aws.SNSClient) *SNSEvents {
	return &SNSEvents{client: client}
}

func (e *SNSEvents) ProfileCreated(ctx context.Context, profile StoredProfile) error {
	_, err := e.client.PublishJSON(ctx, eventProfileCreated, profileCreatedEvent{
		ID:                profile.ID,
		CorporationNumber: profile.CorporationNumber,
		CreatedAt:         profile.CreatedAt,
	}, map[string]string{"event_type": eventProfileCreated})
	return err
}
