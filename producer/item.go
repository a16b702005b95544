// Package producer implements the event producers: independent components
// that each observe one external signal source and translate its signals
// into typed domain events, delivered synchronously to a single listener.
package producer

import (
	"log/slog"
	"sync"

	"github.com/eddytalvala/KDEAudioPlayer/domain"
	"github.com/eddytalvala/KDEAudioPlayer/ports"
)

// ItemEventProducer observes the six descriptive attributes of a playable
// item and emits one ItemUpdatedEvent per changed attribute.
//
// Events carry no payload; consumers re-read the current value from the
// item. Changes are never coalesced: N changes to the same attribute
// produce N events, in source order.
type ItemEventProducer struct {
	// Dependencies
	logger *slog.Logger

	// mu protects all state below
	mu sync.Mutex

	item         ports.ObservableItem
	listener     ports.EventListener
	listening    bool
	observations []ports.ObservationID
}

// NewItemEventProducer creates an idle item event producer.
func NewItemEventProducer(logger *slog.Logger) *ItemEventProducer {
	return &ItemEventProducer{
		logger: logger,
	}
}

// SetListener installs the single listener receiving this producer's events.
// Passing nil detaches the listener; subsequent events are dropped silently.
func (p *ItemEventProducer) SetListener(listener ports.EventListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = listener
}

// SetItem assigns the item to observe. Assigning a new item while listening
// first tears down every subscription on the old item; the producer does not
// restart on its own.
func (p *ItemEventProducer) SetItem(item ports.ObservableItem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.listening {
		p.stopLocked()
	}
	p.item = item
}

// StartProducingEvents subscribes to all six item attributes.
// No-op when already listening or when no item is set. Only changes after
// this call are delivered.
func (p *ItemEventProducer) StartProducingEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.listening || p.item == nil {
		return
	}

	for _, attribute := range domain.ItemAttributes {
		id := p.item.Observe(attribute, func(changed domain.ItemAttribute) {
			p.emit(domain.NewItemUpdatedEvent(changed))
		})
		p.observations = append(p.observations, id)
	}
	p.listening = true

	p.logger.Debug("item event producer started",
		slog.Int("observations", len(p.observations)))
}

// StopProducingEvents removes every subscription created by
// StartProducingEvents. No-op when not listening.
func (p *ItemEventProducer) StopProducingEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// stopLocked tears down the current subscriptions. Caller holds p.mu.
func (p *ItemEventProducer) stopLocked() {
	if !p.listening {
		return
	}

	for _, id := range p.observations {
		p.item.Unobserve(id)
	}
	p.observations = nil
	p.listening = false

	p.logger.Debug("item event producer stopped")
}

// Close guarantees StopProducingEvents has run. Safe during host teardown.
func (p *ItemEventProducer) Close() error {
	p.StopProducingEvents()
	return nil
}

// emit delivers one event to the listener, on the caller's goroutine.
// With no listener set the event is dropped silently.
func (p *ItemEventProducer) emit(event domain.Event) {
	p.mu.Lock()
	listener := p.listener
	p.mu.Unlock()

	if listener == nil {
		return
	}
	listener.OnEvent(event, p)
}

// Verify that ItemEventProducer implements the EventProducer interface
var _ ports.EventProducer = (*ItemEventProducer)(nil)
