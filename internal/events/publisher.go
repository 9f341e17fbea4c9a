// Package events publishes list lifecycle events to NATS JetStream so
// downstream consumers (app sync, analytics) can fan out. Publishing is
// best-effort: a failure is logged and never fails the request.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/shoppiq/list-gateway/internal/model"
)

const (
	// StreamName is the name of the list events stream.
	StreamName = "SHOPPIQ_LISTS"

	// SubjectPrefix is the prefix for all list event subjects.
	SubjectPrefix = "shoppiq.lists"
)

// Config holds NATS connection configuration.
type Config struct {
	URL   string
	Token string
}

// Publisher wraps a NATS connection and JetStream context. A nil Publisher
// is valid and drops every event, so callers need no enablement checks.
type Publisher struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	logger *zap.Logger
}

// Connect establishes a connection to the NATS server.
func Connect(ctx context.Context, cfg Config, log *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &Publisher{conn: nc, js: js, logger: log}, nil
}

// EnsureStream ensures the list events stream exists.
func (p *Publisher) EnsureStream(ctx context.Context) error {
	if p == nil {
		return nil
	}

	_, err := p.js.Stream(ctx, StreamName)
	if err == nil {
		return nil
	}

	_, err = p.js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      30 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Description: "Shopping list lifecycle events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}

// IsConnected reports whether the publisher holds a live connection.
func (p *Publisher) IsConnected() bool {
	return p != nil && p.conn != nil && p.conn.IsConnected()
}

// ListEvent is the payload published for list lifecycle events.
type ListEvent struct {
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	ListUUID  string       `json:"list_uuid,omitempty"`
	UserEmail string       `json:"user_email"`
	ItemCount int          `json:"item_count"`
	Intent    model.Intent `json:"intent,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// ListGenerated publishes a generated-list event.
func (p *Publisher) ListGenerated(ctx context.Context, list *model.ShoppingList) {
	p.publish(ctx, "generated", ListEvent{
		Type:      "generated",
		ListUUID:  list.UUID,
		UserEmail: list.CreatedBy,
		ItemCount: len(list.Items),
	})
}

// ListUpdated publishes a conversational-update event.
func (p *Publisher) ListUpdated(ctx context.Context, userEmail string, intent model.Intent, itemCount int) {
	p.publish(ctx, "updated", ListEvent{
		Type:      "updated",
		UserEmail: userEmail,
		ItemCount: itemCount,
		Intent:    intent,
	})
}

func (p *Publisher) publish(ctx context.Context, kind string, event ListEvent) {
	if p == nil || p.js == nil {
		return
	}

	event.ID = uuid.New().String()
	event.CreatedAt = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("failed to marshal list event", zap.Error(err))
		return
	}

	subject := fmt.Sprintf("%s.%s", SubjectPrefix, kind)
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		p.logger.Warn("failed to publish list event",
			zap.String("subject", subject),
			zap.Error(err))
	}
}
