// Package ports defines interfaces for dependency inversion.
// Producers depend only on these interfaces, never on concrete collaborators,
// which keeps them testable against in-memory implementations.
package ports

import (
	"github.com/eddytalvala/KDEAudioPlayer/domain"
)

// EventListener is the single consumer registered on an event producer.
// OnEvent is called synchronously on the goroutine of the underlying signal
// facility, so handlers must not perform long blocking work.
type EventListener interface {
	// OnEvent receives one event together with the producer that emitted it.
	OnEvent(event domain.Event, producer EventProducer)
}

// EventProducer is the contract every producer implements.
//
// The listener reference is non-owning: a producer never keeps its listener
// alive, and with no listener set, delivery is a silent no-op. Start and stop
// are idempotent; both are synchronous, non-blocking registration calls.
type EventProducer interface {
	// SetListener installs the single listener receiving this producer's
	// events. Passing nil detaches the current listener; subsequent events
	// are dropped silently.
	SetListener(listener EventListener)

	// StartProducingEvents subscribes to every signal the producer cares
	// about on its current source. It is a no-op when already listening or
	// when no source is set. Only changes occurring after this call are
	// delivered; there is no replay.
	StartProducingEvents()

	// StopProducingEvents removes every subscription created by
	// StartProducingEvents. It is a no-op when not listening and is safe to
	// call repeatedly and during teardown of the host.
	StopProducingEvents()
}
