// Package domain defines the typed events the producer subsystem emits.
// Events are immutable value types; the consuming state machine switches on
// their EventType and re-reads any state it needs from the observed source.
package domain

import (
	"time"
)

// Event is the base interface for all events emitted by an event producer.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Item attribute events, one per observed attribute
	EventUpdatedArtist      EventType = "item.updated_artist"
	EventUpdatedTitle       EventType = "item.updated_title"
	EventUpdatedAlbum       EventType = "item.updated_album"
	EventUpdatedTrackCount  EventType = "item.updated_track_count"
	EventUpdatedTrackNumber EventType = "item.updated_track_number"
	EventUpdatedArtwork     EventType = "item.updated_artwork"

	// Engine events
	EventLoadedDuration    EventType = "engine.loaded_duration"
	EventLoadedMetadata    EventType = "engine.loaded_metadata"
	EventStartedBuffering  EventType = "engine.started_buffering"
	EventReadyToPlay       EventType = "engine.ready_to_play"
	EventEndedPlaying      EventType = "engine.ended_playing"
	EventLoadedMoreRange   EventType = "engine.loaded_more_range"
	EventProgressed        EventType = "engine.progressed"
	EventInterruptionBegan EventType = "engine.interruption_began"
	EventInterruptionEnded EventType = "engine.interruption_ended"
	EventRouteChanged      EventType = "engine.route_changed"
	EventSessionMessedUp   EventType = "engine.session_messed_up"

	// Retry cycle events
	EventRetryAvailable EventType = "retry.available"
	EventRetryFailed    EventType = "retry.failed"

	// Seek repeat events
	EventSeekBackward EventType = "seek.backward"
	EventSeekForward  EventType = "seek.forward"

	// Network events. Only the event shape ships here; reachability
	// detection itself lives outside this library.
	EventConnectionRetrieved EventType = "network.connection_retrieved"
	EventConnectionLost      EventType = "network.connection_lost"
)

// Equal reports whether two events are the same occurrence kind.
// Equality is defined by EventType alone: payloads are deliberately ignored,
// so two EndedPlayingEvents compare equal regardless of the carried error.
// Listener code relies on this semantic; do not tighten it.
func Equal(a, b Event) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Type() == b.Type()
}

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// ItemUpdatedEvent is emitted when one descriptive attribute of the observed
// item changes. It carries no payload: consumers re-read the current value
// from the item itself.
type ItemUpdatedEvent struct {
	baseEvent
	Attribute ItemAttribute
}

// Type returns the event type for the changed attribute.
func (e ItemUpdatedEvent) Type() EventType {
	switch e.Attribute {
	case ItemAttributeArtist:
		return EventUpdatedArtist
	case ItemAttributeTitle:
		return EventUpdatedTitle
	case ItemAttributeAlbum:
		return EventUpdatedAlbum
	case ItemAttributeTrackCount:
		return EventUpdatedTrackCount
	case ItemAttributeTrackNumber:
		return EventUpdatedTrackNumber
	case ItemAttributeArtwork:
		return EventUpdatedArtwork
	default:
		return EventType("item.updated_" + string(e.Attribute))
	}
}

// NewItemUpdatedEvent creates a new ItemUpdatedEvent for the given attribute.
func NewItemUpdatedEvent(attribute ItemAttribute) ItemUpdatedEvent {
	return ItemUpdatedEvent{
		baseEvent: newBaseEvent(),
		Attribute: attribute,
	}
}

// LoadedDurationEvent is emitted when the engine learns the item's duration.
type LoadedDurationEvent struct {
	baseEvent
	Duration time.Duration
}

// Type returns the event type.
func (e LoadedDurationEvent) Type() EventType {
	return EventLoadedDuration
}

// NewLoadedDurationEvent creates a new LoadedDurationEvent.
func NewLoadedDurationEvent(duration time.Duration) LoadedDurationEvent {
	return LoadedDurationEvent{
		baseEvent: newBaseEvent(),
		Duration:  duration,
	}
}

// LoadedMetadataEvent is emitted right after LoadedDurationEvent and carries
// the engine's current metadata items.
type LoadedMetadataEvent struct {
	baseEvent
	Items []MetadataItem
}

// Type returns the event type.
func (e LoadedMetadataEvent) Type() EventType {
	return EventLoadedMetadata
}

// NewLoadedMetadataEvent creates a new LoadedMetadataEvent.
func NewLoadedMetadataEvent(items []MetadataItem) LoadedMetadataEvent {
	return LoadedMetadataEvent{
		baseEvent: newBaseEvent(),
		Items:     items,
	}
}

// StartedBufferingEvent is emitted when the engine's buffer runs empty.
type StartedBufferingEvent struct {
	baseEvent
}

// Type returns the event type.
func (e StartedBufferingEvent) Type() EventType {
	return EventStartedBuffering
}

// NewStartedBufferingEvent creates a new StartedBufferingEvent.
func NewStartedBufferingEvent() StartedBufferingEvent {
	return StartedBufferingEvent{baseEvent: newBaseEvent()}
}

// ReadyToPlayEvent is emitted when the engine becomes likely to keep up.
type ReadyToPlayEvent struct {
	baseEvent
}

// Type returns the event type.
func (e ReadyToPlayEvent) Type() EventType {
	return EventReadyToPlay
}

// NewReadyToPlayEvent creates a new ReadyToPlayEvent.
func NewReadyToPlayEvent() ReadyToPlayEvent {
	return ReadyToPlayEvent{baseEvent: newBaseEvent()}
}

// EndedPlayingEvent is emitted when playback ends, either normally (Err is
// nil, the item played to its end) or because the engine failed (Err carries
// the engine's error). Note that Equal treats all EndedPlayingEvents as
// equal; the error is not part of event identity.
type EndedPlayingEvent struct {
	baseEvent
	Err error
}

// Type returns the event type.
func (e EndedPlayingEvent) Type() EventType {
	return EventEndedPlaying
}

// NewEndedPlayingEvent creates a new EndedPlayingEvent.
func NewEndedPlayingEvent(err error) EndedPlayingEvent {
	return EndedPlayingEvent{
		baseEvent: newBaseEvent(),
		Err:       err,
	}
}

// LoadedMoreRangeEvent is emitted when the engine buffers a new time range.
// It carries the most recently loaded range only.
type LoadedMoreRangeEvent struct {
	baseEvent
	Start time.Duration
	End   time.Duration
}

// Type returns the event type.
func (e LoadedMoreRangeEvent) Type() EventType {
	return EventLoadedMoreRange
}

// NewLoadedMoreRangeEvent creates a new LoadedMoreRangeEvent.
func NewLoadedMoreRangeEvent(start, end time.Duration) LoadedMoreRangeEvent {
	return LoadedMoreRangeEvent{
		baseEvent: newBaseEvent(),
		Start:     start,
		End:       end,
	}
}

// ProgressedEvent is emitted on every periodic progress tick.
type ProgressedEvent struct {
	baseEvent
	Position time.Duration
}

// Type returns the event type.
func (e ProgressedEvent) Type() EventType {
	return EventProgressed
}

// NewProgressedEvent creates a new ProgressedEvent.
func NewProgressedEvent(position time.Duration) ProgressedEvent {
	return ProgressedEvent{
		baseEvent: newBaseEvent(),
		Position:  position,
	}
}

// InterruptionBeganEvent is emitted when the platform session is interrupted.
type InterruptionBeganEvent struct {
	baseEvent
}

// Type returns the event type.
func (e InterruptionBeganEvent) Type() EventType {
	return EventInterruptionBegan
}

// NewInterruptionBeganEvent creates a new InterruptionBeganEvent.
func NewInterruptionBeganEvent() InterruptionBeganEvent {
	return InterruptionBeganEvent{baseEvent: newBaseEvent()}
}

// InterruptionEndedEvent is emitted when an interruption ends and the
// platform indicates playback should resume.
type InterruptionEndedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e InterruptionEndedEvent) Type() EventType {
	return EventInterruptionEnded
}

// NewInterruptionEndedEvent creates a new InterruptionEndedEvent.
func NewInterruptionEndedEvent() InterruptionEndedEvent {
	return InterruptionEndedEvent{baseEvent: newBaseEvent()}
}

// RouteChangedEvent is emitted when the audio route changes.
type RouteChangedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e RouteChangedEvent) Type() EventType {
	return EventRouteChanged
}

// NewRouteChangedEvent creates a new RouteChangedEvent.
func NewRouteChangedEvent() RouteChangedEvent {
	return RouteChangedEvent{baseEvent: newBaseEvent()}
}

// SessionMessedUpEvent is emitted when the platform session is invalidated
// and playback state can no longer be trusted.
type SessionMessedUpEvent struct {
	baseEvent
}

// Type returns the event type.
func (e SessionMessedUpEvent) Type() EventType {
	return EventSessionMessedUp
}

// NewSessionMessedUpEvent creates a new SessionMessedUpEvent.
func NewSessionMessedUpEvent() SessionMessedUpEvent {
	return SessionMessedUpEvent{baseEvent: newBaseEvent()}
}

// RetryAvailableEvent is emitted on each retry tick before the cycle is
// exhausted.
type RetryAvailableEvent struct {
	baseEvent
}

// Type returns the event type.
func (e RetryAvailableEvent) Type() EventType {
	return EventRetryAvailable
}

// NewRetryAvailableEvent creates a new RetryAvailableEvent.
func NewRetryAvailableEvent() RetryAvailableEvent {
	return RetryAvailableEvent{baseEvent: newBaseEvent()}
}

// RetryFailedEvent is emitted exactly once per retry cycle, when the cycle
// reaches its maximum retry count.
type RetryFailedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e RetryFailedEvent) Type() EventType {
	return EventRetryFailed
}

// NewRetryFailedEvent creates a new RetryFailedEvent.
func NewRetryFailedEvent() RetryFailedEvent {
	return RetryFailedEvent{baseEvent: newBaseEvent()}
}

// SeekEvent is emitted on each tick of the seek repeat cycle.
type SeekEvent struct {
	baseEvent
	Direction SeekDirection
}

// Type returns the event type for the seek direction.
func (e SeekEvent) Type() EventType {
	if e.Direction == SeekForward {
		return EventSeekForward
	}
	return EventSeekBackward
}

// NewSeekEvent creates a new SeekEvent.
func NewSeekEvent(direction SeekDirection) SeekEvent {
	return SeekEvent{
		baseEvent: newBaseEvent(),
		Direction: direction,
	}
}

// ConnectionEvent describes a change in network reachability. The library
// defines the shape only; no producer for it ships here.
type ConnectionEvent struct {
	baseEvent
	Retrieved bool
}

// Type returns the event type.
func (e ConnectionEvent) Type() EventType {
	if e.Retrieved {
		return EventConnectionRetrieved
	}
	return EventConnectionLost
}

// NewConnectionEvent creates a new ConnectionEvent.
func NewConnectionEvent(retrieved bool) ConnectionEvent {
	return ConnectionEvent{
		baseEvent: newBaseEvent(),
		Retrieved: retrieved,
	}
}
