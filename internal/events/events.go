package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Event types published after a listing mutation is persisted.
const (
	ListingCreated = "created"
	ListingUpdated = "updated"
	ListingDeleted = "deleted"
)

// ListingEvent is the payload published for every listing mutation.
type ListingEvent struct {
	Type         string    `json:"type"`
	ListingID    int       `json:"listing_id"`
	Title        string    `json:"title,omitempty"`
	PrimaryImage string    `json:"primary_image,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher delivers listing events. Delivery is fire-and-forget from the caller's
// point of view: a failed publish never rolls back a persisted mutation.
type Publisher interface {
	Publish(ctx context.Context, ev ListingEvent) error
	Close()
}

// NatsPublisher publishes events on "<prefix>.<type>".
type NatsPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNatsPublisher connects to url.
func NewNatsPublisher(url, prefix string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("propertyapi"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	if prefix == "" {
		prefix = "listings"
	}
	return &NatsPublisher{conn: conn, prefix: prefix}, nil
}

// Subject returns the subject an event of type t is published on.
func (p *NatsPublisher) Subject(t string) string {
	return p.prefix + "." + t
}

func (p *NatsPublisher) Publish(_ context.Context, ev ListingEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.conn.Publish(p.Subject(ev.Type), data)
}

func (p *NatsPublisher) Close() {
	p.conn.Close()
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ListingEvent) error { return nil }
func (NopPublisher) Close()                                      {}
