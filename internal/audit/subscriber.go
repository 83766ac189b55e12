// Package audit records blog lifecycle events to the structured log. It
// is a pure subscriber: nothing in the write path waits on it.
package audit

import (
	"context"

	"github.com/calebh/storyspace/internal/platform/eventbus"
	"github.com/calebh/storyspace/internal/platform/events"
	"github.com/calebh/storyspace/internal/platform/logger"
)

// Subscriber listens for blog lifecycle events and writes audit entries.
type Subscriber struct {
	logger logger.Logger
}

// NewSubscriber creates an audit subscriber and registers it on the bus.
func NewSubscriber(bus *eventbus.Bus, logger logger.Logger) *Subscriber {
	s := &Subscriber{logger: logger}

	bus.Subscribe(events.BlogCreatedTopic, s.onBlogCreated)
	bus.Subscribe(events.BlogUpdatedTopic, s.onBlogUpdated)
	bus.Subscribe(events.BlogDeletedTopic, s.onBlogDeleted)

	return s
}

func (s *Subscriber) onBlogCreated(ctx context.Context, event eventbus.Event) error {
	payload, ok := event.Payload.(events.BlogCreatedEvent)
	if !ok {
		s.logger.Warn(ctx, "unexpected payload type", "topic", event.Topic)
		return nil
	}

	s.logger.Info(ctx, "audit: blog created",
		"blog_id", payload.BlogID,
		"actor_id", payload.ActorID,
		"slug", payload.Slug,
		"status", payload.Status,
		"occurred_at", payload.OccurredAt,
	)
	return nil
}

func (s *Subscriber) onBlogUpdated(ctx context.Context, event eventbus.Event) error {
	payload, ok := event.Payload.(events.BlogUpdatedEvent)
	if !ok {
		s.logger.Warn(ctx, "unexpected payload type", "topic", event.Topic)
		return nil
	}

	s.logger.Info(ctx, "audit: blog updated",
		"blog_id", payload.BlogID,
		"actor_id", payload.ActorID,
		"slug", payload.Slug,
		"status", payload.Status,
		"occurred_at", payload.OccurredAt,
	)
	return nil
}

func (s *Subscriber) onBlogDeleted(ctx context.Context, event eventbus.Event) error {
	payload, ok := event.Payload.(events.BlogDeletedEvent)
	if !ok {
		s.logger.Warn(ctx, "unexpected payload type", "topic", event.Topic)
		return nil
	}

	s.logger.Info(ctx, "audit: blog deleted",
		"blog_id", payload.BlogID,
		"actor_id", payload.ActorID,
		"occurred_at", payload.OccurredAt,
	)
	return nil
}
