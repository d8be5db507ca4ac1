package provider

import (
	"context"

	"github.com/beplic/chatapi-dispatcher/internal/dispatcher/domain"
)

// Provider sends a validated message to a messaging backend and reports
// the normalized result. The transport layer only ever depends on this
// interface, so backends other than Chat API can be dropped in without
// touching the validation pipeline.
type Provider interface {
	Send(ctx context.Context, msg *domain.Message) (*domain.Response, error)
}

// EventPublisher receives fire-and-forget dispatch events. Satisfied by
// messagebroker.NatsClient.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}
