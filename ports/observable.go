// Package ports defines the observation surfaces of the external
// collaborators the producers watch.
package ports

import (
	"time"

	"github.com/eddytalvala/KDEAudioPlayer/domain"
)

// ObservationID identifies one observation registration. Producers hold the
// IDs returned on start and remove exactly the same IDs on stop.
type ObservationID string

// ItemAttributeObserver is called when an observed item attribute changes.
// The call happens synchronously on the goroutine that mutated the item, and
// only on an actual value change.
type ItemAttributeObserver func(attribute domain.ItemAttribute)

// ObservableItem is the observation surface of a playable item.
// Implementations fire observers only for changes occurring after the
// observation was registered, and only when the value actually changed.
type ObservableItem interface {
	// Observe registers fn for changes of the given attribute.
	Observe(attribute domain.ItemAttribute, fn ItemAttributeObserver) ObservationID

	// Unobserve removes a registration. Unknown IDs are a no-op.
	Unobserve(id ObservationID)
}

// EngineAttributeObserver is called with each observed engine attribute
// transition.
type EngineAttributeObserver func(change domain.AttributeChange)

// NotificationHandler is called with each session notification posted on a
// subscribed topic.
type NotificationHandler func(notification domain.Notification)

// ProgressObserver is called on each periodic progress tick with the
// engine's current playback position.
type ProgressObserver func(position time.Duration)

// ObservableEngine is the observation surface of the media engine and its
// platform session. All deliveries happen on the engine's single delivery
// goroutine, so signals from different facilities keep a total order.
type ObservableEngine interface {
	// ObserveAttribute registers fn for transitions of the given attribute.
	ObserveAttribute(attribute domain.EngineAttribute, fn EngineAttributeObserver) ObservationID

	// UnobserveAttribute removes a registration. Unknown IDs are a no-op.
	UnobserveAttribute(id ObservationID)

	// SubscribeNotifications registers fn for session notifications on the
	// given topic.
	SubscribeNotifications(topic domain.NotificationTopic, fn NotificationHandler) ObservationID

	// UnsubscribeNotifications removes a subscription. Unknown IDs are a no-op.
	UnsubscribeNotifications(id ObservationID)

	// AddPeriodicObserver registers fn to be called with the current
	// playback position every interval.
	AddPeriodicObserver(interval time.Duration, fn ProgressObserver) ObservationID

	// RemovePeriodicObserver cancels a periodic observer. Unknown IDs are a
	// no-op. A tick already in flight may still deliver; no new tick fires
	// after this returns.
	RemovePeriodicObserver(id ObservationID)

	// Metadata returns the engine's current metadata items for the item.
	Metadata() []domain.MetadataItem

	// Err returns the engine's playback error, or nil when none occurred.
	Err() error
}
