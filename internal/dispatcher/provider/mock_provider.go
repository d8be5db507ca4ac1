package provider

import (
	"context"
	"log/slog"

	"github.com/beplic/chatapi-dispatcher/internal/dispatcher/domain"
)

// MockProvider is a test implementation of Provider. It records the last
// message it was asked to send and replies with a canned response or
// error.
type MockProvider struct {
	logger *slog.Logger

	Response *domain.Response
	Err      error

	LastMessage *domain.Message
}

// NewMockProvider creates a MockProvider.
func NewMockProvider(logger *slog.Logger) *MockProvider {
	return &MockProvider{logger: logger.With("provider", "mock")}
}

// Send returns the canned response or error.
func (p *MockProvider) Send(ctx context.Context, msg *domain.Message) (*domain.Response, error) {
	p.LastMessage = msg
	p.logger.InfoContext(ctx, "MockProvider: Send called", "phone", msg.Phone)

	if p.Err != nil {
		return nil, p.Err
	}
	if p.Response != nil {
		return p.Response, nil
	}

	id := "mock-id"
	return &domain.Response{Success: true, ID: &id}, nil
}
