// Package events publishes import lifecycle events to Redis Streams so other
// services can react to finished portal runs without polling the database.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/gojobs/internal/logger"
)

// StreamName is the Redis stream import events are appended to.
const StreamName = "gojobs:imports"

const asyncPublishTimeout = 5 * time.Second

// EventImportCompleted marks a finished per-portal import run.
const EventImportCompleted = "import.completed"

// ImportEvent is the payload appended to the stream.
type ImportEvent struct {
	EventID      uuid.UUID `json:"eventId"`
	EventType    string    `json:"eventType"`
	PortalID     int       `json:"portalId"`
	JobType      string    `json:"jobType"`
	TotalFetched int       `json:"totalFetched"`
	NewCount     int       `json:"newCount"`
	UpdatedCount int       `json:"updatedCount"`
	SkippedCount int       `json:"skippedCount"`
	ErrorCount   int       `json:"errorCount"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher publishes import events. A nil Publisher is a valid no-op, so
// callers never need to branch on whether events are enabled.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a publisher. Returns nil when client is nil.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{client: client, log: log}
}

// Publish appends an event to the stream.
func (p *Publisher) Publish(ctx context.Context, event ImportEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{"event": string(payload)},
	})
	if publishErr := result.Err(); publishErr != nil {
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	p.log.Debug("Published import event",
		logger.String("event_type", event.EventType),
		logger.String("job_type", event.JobType),
		logger.String("stream_id", result.Val()),
	)

	return nil
}

// PublishAsync publishes without blocking the import loop. Errors are logged,
// never returned.
func (p *Publisher) PublishAsync(event ImportEvent) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil {
			p.log.Error("Async event publish failed",
				logger.String("event_type", event.EventType),
				logger.Error(err),
			)
		}
	}()
}
