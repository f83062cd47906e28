package messaging

import (
	"context"

	"github.com/feral-file/ff-ip-registry/internal/domain"
)

// Publisher defines the interface for publishing events to message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a registry event to the message broker
	PublishEvent(ctx context.Context, event *domain.RegistryEvent) error
	// Close closes the connection
	Close()
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every event, for deployments without a broker
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishEvent(ctx context.Context, event *domain.RegistryEvent) error {
	return nil
}

func (nopPublisher) Close() {}
