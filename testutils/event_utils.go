package testutils

import (
	"sync"

	"taskpro/api/models"
)

// PublishedEvent is one event captured by RecordingPublisher.
type PublishedEvent struct {
	Subject string
	Event   models.Event
}

// RecordingPublisher keeps every published event in memory.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
	Err    error
}

func (p *RecordingPublisher) Publish(subject string, event *models.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, PublishedEvent{Subject: subject, Event: *event})
	return nil
}

func (p *RecordingPublisher) Close() {}

func (p *RecordingPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]PublishedEvent(nil), p.events...)
}

// EventNames lists the event types in publish order.
func (p *RecordingPublisher) EventNames() []string {
	events := p.Events()
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Event.Event)
	}
	return names
}
