package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ddfriends/places/internal/core/domain"
)

// Publisher implements ports.EventPublisher using NATS JetStream. Location
// change events let downstream consumers (feeds, the WebSocket relay) react
// without polling the store.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the location event stream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      "LOCATION_EVENTS",
		Subjects:  []string{"places.location.>"},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist — try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishLocationCreated(ctx context.Context, loc *domain.Location) error {
	return p.publish("places.location.created."+strconv.FormatInt(loc.ID, 10), loc)
}

func (p *Publisher) PublishLocationUpdated(ctx context.Context, loc *domain.Location) error {
	return p.publish("places.location.updated."+strconv.FormatInt(loc.ID, 10), loc)
}

func (p *Publisher) publish(subject string, loc *domain.Location) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(subject, data)
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
