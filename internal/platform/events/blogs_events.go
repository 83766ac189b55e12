package events

import (
	"time"

	"github.com/calebh/storyspace/internal/platform/eventbus"
	"github.com/google/uuid"
)

// Event topics for blogs
const (
	BlogCreatedTopic eventbus.Topic = "blogs.created"
	BlogUpdatedTopic eventbus.Topic = "blogs.updated"
	BlogDeletedTopic eventbus.Topic = "blogs.deleted"
)

// BlogCreatedEvent is published when a new blog is created
type BlogCreatedEvent struct {
	BlogID     uuid.UUID
	ActorID    uuid.UUID // Owner who created the blog
	Title      string
	Slug       string
	Status     string
	OccurredAt time.Time
}

// BlogUpdatedEvent is published when a blog is updated
type BlogUpdatedEvent struct {
	BlogID     uuid.UUID
	ActorID    uuid.UUID // User who updated the blog
	Title      string
	Slug       string
	Status     string
	OccurredAt time.Time
}

// BlogDeletedEvent is published when a blog is deleted
type BlogDeletedEvent struct {
	BlogID     uuid.UUID
	ActorID    uuid.UUID // User who deleted the blog
	OccurredAt time.Time
}
