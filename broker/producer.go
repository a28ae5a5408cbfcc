package broker

import (
	"fmt"
	"log"
	"time"

	"taskpro/api/models"

	"github.com/nats-io/nats.go"
)

// Publisher delivers committed domain events. Publishing is best effort:
// the database write has already succeeded when it runs.
type Publisher interface {
	Publish(resource string, event *models.Event) error
	Close()
}

// NATSPublisher publishes events as JSON on "<prefix>.<resource>".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("taskpro-api"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Printf("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	log.Printf("NATS publisher connected to %s", conn.ConnectedUrl())
	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

func (p *NATSPublisher) Publish(resource string, event *models.Event) error {
	data, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.Event, err)
	}

	subject := Subject(p.prefix, resource)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s on %s: %w", event.Event, subject, err)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		log.Printf("Failed to drain NATS connection: %v", err)
		p.conn.Close()
	}
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(string, *models.Event) error { return nil }

func (NoopPublisher) Close() {}

// NewPublisher returns a NATS publisher when url is set and a NoopPublisher
// otherwise. A broker that cannot be reached degrades to NoopPublisher so
// the API stays available.
func NewPublisher(url, prefix string) Publisher {
	if url == "" {
		log.Println("NATS_URL not set, domain events are disabled")
		return NoopPublisher{}
	}
	publisher, err := NewNATSPublisher(url, prefix)
	if err != nil {
		log.Printf("Warning: %v", err)
		log.Println("The application will continue, but domain events are disabled")
		return NoopPublisher{}
	}
	return publisher
}
