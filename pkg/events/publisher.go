package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edubridge/academy-api/internal/service"
)

// Publisher fans domain events out over NATS, mirrored onto a Redis channel
// for consumers that only speak Redis. Either connection may be nil; the
// publisher uses whatever transports it was given.
type Publisher struct {
	nats    *nats.Conn
	subject string
	redis   *redis.Client
	channel string
	nodeID  string
	logger  zerolog.Logger
}

type envelope struct {
	Source string        `json:"source"`
	Event  service.Event `json:"event"`
	SentAt time.Time     `json:"sent_at"`
}

// New constructs a Publisher. channelBase names both the NATS subject prefix
// and the Redis channel, e.g. "academy" publishes to "academy.events".
func New(natsConn *nats.Conn, redisClient *redis.Client, channelBase string, logger zerolog.Logger) *Publisher {
	subject := ""
	channel := ""
	if channelBase != "" {
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".events"
		channel = channelBase + ":events"
	}

	return &Publisher{
		nats:    natsConn,
		subject: subject,
		redis:   redisClient,
		channel: channel,
		nodeID:  uuid.NewString(),
		logger:  logger.With().Str("component", "event_publisher").Logger(),
	}
}

// Publish serializes the event and pushes it to every configured transport.
func (p *Publisher) Publish(ctx context.Context, event service.Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(envelope{
		Source: p.nodeID,
		Event:  event,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	var firstErr error

	if p.nats != nil && p.subject != "" {
		if err := p.nats.Publish(p.subject, payload); err != nil {
			p.logger.Warn().Err(err).Str("event", event.Name).Msg("nats publish failed")
			firstErr = err
		}
	}

	if p.redis != nil && p.channel != "" {
		if err := p.redis.Publish(ctx, p.channel, payload).Err(); err != nil {
			p.logger.Warn().Err(err).Str("event", event.Name).Msg("redis publish failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
