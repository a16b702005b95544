// Package domain contains core value types shared by the producers and the
// observable collaborators they watch.
package domain

import (
	"time"
)

// ItemAttribute names one observable descriptive attribute of a playable item.
type ItemAttribute string

// The six observable item attributes.
const (
	ItemAttributeArtist      ItemAttribute = "artist"
	ItemAttributeTitle       ItemAttribute = "title"
	ItemAttributeAlbum       ItemAttribute = "album"
	ItemAttributeTrackCount  ItemAttribute = "trackCount"
	ItemAttributeTrackNumber ItemAttribute = "trackNumber"
	ItemAttributeArtwork     ItemAttribute = "artwork"
)

// ItemAttributes lists every observable item attribute, in the order a
// producer subscribes to them.
var ItemAttributes = []ItemAttribute{
	ItemAttributeArtist,
	ItemAttributeTitle,
	ItemAttributeAlbum,
	ItemAttributeTrackCount,
	ItemAttributeTrackNumber,
	ItemAttributeArtwork,
}

// EngineAttribute names one observable attribute of the media engine.
type EngineAttribute string

// The five observable engine attributes.
const (
	EngineAttributeBufferEmpty      EngineAttribute = "playbackBufferEmpty"
	EngineAttributeLikelyToKeepUp   EngineAttribute = "playbackLikelyToKeepUp"
	EngineAttributeDuration         EngineAttribute = "duration"
	EngineAttributeStatus           EngineAttribute = "status"
	EngineAttributeLoadedTimeRanges EngineAttribute = "loadedTimeRanges"
)

// EngineAttributes lists every observable engine attribute, in the order a
// producer subscribes to them.
var EngineAttributes = []EngineAttribute{
	EngineAttributeBufferEmpty,
	EngineAttributeLikelyToKeepUp,
	EngineAttributeDuration,
	EngineAttributeStatus,
	EngineAttributeLoadedTimeRanges,
}

// AttributeChange describes one observed engine attribute transition.
// Old and New hold the attribute's value before and after the change; their
// dynamic type depends on the attribute (bool, time.Duration, EngineStatus
// or []TimeRange). Observers must type-assert defensively and ignore values
// they do not recognize.
type AttributeChange struct {
	Attribute EngineAttribute
	Old       any
	New       any
}

// EngineStatus represents the readiness state of the media engine.
type EngineStatus int

const (
	// EngineStatusUnknown indicates the engine has not determined readiness yet
	EngineStatusUnknown EngineStatus = iota

	// EngineStatusReady indicates the engine can play the current item
	EngineStatusReady

	// EngineStatusFailed indicates the engine can no longer play the current item
	EngineStatusFailed
)

// String returns a human-readable representation of the engine status.
func (s EngineStatus) String() string {
	switch s {
	case EngineStatusUnknown:
		return "unknown"
	case EngineStatusReady:
		return "ready"
	case EngineStatusFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// NotificationTopic names one platform session notification the engine
// producer subscribes to.
type NotificationTopic string

// The session notification topics.
const (
	TopicInterruptionBegan NotificationTopic = "session.interruption_began"
	TopicInterruptionEnded NotificationTopic = "session.interruption_ended"
	TopicRouteChanged      NotificationTopic = "session.route_changed"
	TopicSessionReset      NotificationTopic = "session.reset"
	TopicItemFinished      NotificationTopic = "item.finished"
)

// NotificationTopics lists every session notification topic, in the order a
// producer subscribes to them.
var NotificationTopics = []NotificationTopic{
	TopicInterruptionBegan,
	TopicInterruptionEnded,
	TopicRouteChanged,
	TopicSessionReset,
	TopicItemFinished,
}

// Notification is one platform session notification.
type Notification struct {
	// Topic identifies the notification
	Topic NotificationTopic

	// ShouldResume is meaningful on TopicInterruptionEnded only: it mirrors
	// the platform's "should resume" option. Without it, the interruption
	// end produces no event.
	ShouldResume bool
}

// MetadataItem is one descriptive metadata entry the engine exposes for the
// current item.
type MetadataItem struct {
	// Key identifies the entry (e.g. "title", "artist")
	Key string

	// Value is the entry's textual value
	Value string
}

// TimeRange is one buffered span of the current item.
type TimeRange struct {
	Start time.Duration
	End   time.Duration
}

// SeekDirection tells a seek repeat cycle which way to seek.
type SeekDirection int

const (
	// SeekBackward seeks toward the start of the item
	SeekBackward SeekDirection = iota + 1

	// SeekForward seeks toward the end of the item
	SeekForward
)

// String returns a human-readable representation of the seek direction.
func (d SeekDirection) String() string {
	switch d {
	case SeekBackward:
		return "backward"
	case SeekForward:
		return "forward"
	default:
		return "invalid"
	}
}
