package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/calebh/storyspace/internal/platform/eventbus"
	"github.com/calebh/storyspace/internal/platform/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger records Info messages so tests can assert on them.
type captureLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *captureLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *captureLogger) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

func (l *captureLogger) Debug(ctx context.Context, msg string, kv ...interface{}) { l.record(msg) }
func (l *captureLogger) Info(ctx context.Context, msg string, kv ...interface{})  { l.record(msg) }
func (l *captureLogger) Warn(ctx context.Context, msg string, kv ...interface{})  { l.record(msg) }
func (l *captureLogger) Error(ctx context.Context, msg string, kv ...interface{}) { l.record(msg) }

func TestSubscriberLogsLifecycleEvents(t *testing.T) {
	log := &captureLogger{}
	bus := eventbus.NewBus(log)
	NewSubscriber(bus, log)

	bus.Publish(context.Background(), eventbus.Event{
		Topic: events.BlogCreatedTopic,
		Payload: events.BlogCreatedEvent{
			BlogID:     uuid.New(),
			ActorID:    uuid.New(),
			Title:      "First post",
			Slug:       "first-post",
			Status:     "public",
			OccurredAt: time.Now(),
		},
	})

	// Dispatch is asynchronous; poll briefly for the entry to land.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if contains(log.snapshot(), "audit: blog created") {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("audit entry not written, got %v", log.snapshot())
}

func TestSubscriberIgnoresMalformedPayload(t *testing.T) {
	log := &captureLogger{}
	bus := eventbus.NewBus(log)
	s := NewSubscriber(bus, log)

	err := s.onBlogDeleted(context.Background(), eventbus.Event{
		Topic:   events.BlogDeletedTopic,
		Payload: "not a struct",
	})
	require.NoError(t, err)
	assert.Contains(t, log.snapshot(), "unexpected payload type")
}

func contains(msgs []string, want string) bool {
	for _, m := range msgs {
		if m == want {
			return true
		}
	}
	return false
}
