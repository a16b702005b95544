package producer

import (
	"sync"

	"github.com/eddytalvala/KDEAudioPlayer/domain"
	"github.com/eddytalvala/KDEAudioPlayer/ports"
)

// recordingListener captures every delivered event for assertions.
type recordingListener struct {
	mu        sync.Mutex
	events    []domain.Event
	producers []ports.EventProducer
}

func (l *recordingListener) OnEvent(event domain.Event, producer ports.EventProducer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	l.producers = append(l.producers, producer)
}

// Events returns a snapshot of the delivered events, in delivery order.
func (l *recordingListener) Events() []domain.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := make([]domain.Event, len(l.events))
	copy(events, l.events)
	return events
}

// Types returns the delivered event types, in delivery order.
func (l *recordingListener) Types() []domain.EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	types := make([]domain.EventType, 0, len(l.events))
	for _, event := range l.events {
		types = append(types, event.Type())
	}
	return types
}

// Count returns how many events of the given type were delivered.
func (l *recordingListener) Count(eventType domain.EventType) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for _, event := range l.events {
		if event.Type() == eventType {
			count++
		}
	}
	return count
}

// Len returns the total number of delivered events.
func (l *recordingListener) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// LastProducer returns the producer that delivered the last event.
func (l *recordingListener) LastProducer() ports.EventProducer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.producers) == 0 {
		return nil
	}
	return l.producers[len(l.producers)-1]
}
