package messaging

import (
	"context"

	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
)

// Publisher defines the interface for publishing sync notifications to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishLaunch announces a token stored from a Launch event
	PublishLaunch(ctx context.Context, n *domain.LaunchNotification) error
	// PublishFeedUpdate announces samples appended to a price feed
	PublishFeedUpdate(ctx context.Context, n *domain.FeedNotification) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every notification
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishLaunch(context.Context, *domain.LaunchNotification) error {
	return nil
}

func (noopPublisher) PublishFeedUpdate(context.Context, *domain.FeedNotification) error {
	return nil
}

func (noopPublisher) Close() {}
