package media

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eddytalvala/KDEAudioPlayer/adapter/dispatch"
	"github.com/eddytalvala/KDEAudioPlayer/adapter/observe"
	"github.com/eddytalvala/KDEAudioPlayer/domain"
	"github.com/eddytalvala/KDEAudioPlayer/ports"
)

// Engine is an in-memory media engine implementing the full observation
// surface the engine producer needs: attribute observation, session
// notifications and periodic progress callbacks.
//
// Every delivery is funneled through one serial queue, so observers see
// attribute transitions, notifications and progress ticks in a single total
// order. Attribute observers fire only on actual value transitions: setting
// an attribute to its current value notifies nobody.
//
// The engine never plays audio. It stands in for the platform playback
// primitive, both in tests and for hosts that drive playback state
// themselves.
type Engine struct {
	// Dependencies
	logger *slog.Logger

	queue         *dispatch.SerialQueue
	attributes    *observe.Registry
	notifications *observe.Registry

	// mu protects all state below
	mu sync.RWMutex

	bufferEmpty    bool
	likelyToKeepUp bool
	duration       time.Duration
	durationKnown  bool
	status         domain.EngineStatus
	loadedRanges   []domain.TimeRange
	metadata       []domain.MetadataItem
	err            error
	position       time.Duration

	periodic map[ports.ObservationID]*periodicObserver
	closed   bool
}

// periodicObserver is one running progress ticker.
type periodicObserver struct {
	stop chan struct{}
	done chan struct{}
}

// NewEngine creates an engine and starts its delivery queue.
// Call Close when done to stop the queue and any periodic observers.
func NewEngine() *Engine {
	return &Engine{
		queue:         dispatch.NewSerialQueue(),
		attributes:    observe.NewRegistry(),
		notifications: observe.NewRegistry(),
		periodic:      make(map[ports.ObservationID]*periodicObserver),
	}
}

// SetLogger sets the logger for this engine.
func (e *Engine) SetLogger(logger *slog.Logger) {
	e.mu.Lock()
	e.logger = logger
	e.mu.Unlock()
	e.attributes.SetLogger(logger)
	e.notifications.SetLogger(logger)
}

// ObserveAttribute registers fn for transitions of the given attribute.
func (e *Engine) ObserveAttribute(attribute domain.EngineAttribute, fn ports.EngineAttributeObserver) ports.ObservationID {
	return e.attributes.Observe(string(attribute), func(_ string, payload any) {
		if change, ok := payload.(domain.AttributeChange); ok {
			fn(change)
		}
	})
}

// UnobserveAttribute removes a registration. Unknown IDs are a no-op.
func (e *Engine) UnobserveAttribute(id ports.ObservationID) {
	e.attributes.Unobserve(id)
}

// SubscribeNotifications registers fn for session notifications on topic.
func (e *Engine) SubscribeNotifications(topic domain.NotificationTopic, fn ports.NotificationHandler) ports.ObservationID {
	return e.notifications.Observe(string(topic), func(_ string, payload any) {
		if notification, ok := payload.(domain.Notification); ok {
			fn(notification)
		}
	})
}

// UnsubscribeNotifications removes a subscription. Unknown IDs are a no-op.
func (e *Engine) UnsubscribeNotifications(id ports.ObservationID) {
	e.notifications.Unobserve(id)
}

// AddPeriodicObserver registers fn to receive the current playback position
// every interval, delivered on the engine's queue.
func (e *Engine) AddPeriodicObserver(interval time.Duration, fn ports.ProgressObserver) ports.ObservationID {
	id := ports.ObservationID(uuid.NewString())
	observer := &periodicObserver{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return id
	}
	e.periodic[id] = observer
	e.mu.Unlock()

	go e.runPeriodic(observer, interval, fn)

	return id
}

// RemovePeriodicObserver cancels a periodic observer and waits for its
// ticker to stop. A tick already queued may still deliver; no new tick is
// scheduled after this returns.
func (e *Engine) RemovePeriodicObserver(id ports.ObservationID) {
	e.mu.Lock()
	observer, ok := e.periodic[id]
	if ok {
		delete(e.periodic, id)
	}
	e.mu.Unlock()

	if !ok {
		return
	}

	close(observer.stop)
	<-observer.done
}

// runPeriodic drives one progress ticker until it is removed.
func (e *Engine) runPeriodic(observer *periodicObserver, interval time.Duration, fn ports.ProgressObserver) {
	defer close(observer.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-observer.stop:
			return
		case <-ticker.C:
			e.mu.RLock()
			position := e.position
			e.mu.RUnlock()

			e.queue.Async(func() {
				fn(position)
			})
		}
	}
}

// Metadata returns the engine's current metadata items.
func (e *Engine) Metadata() []domain.MetadataItem {
	e.mu.RLock()
	defer e.mu.RUnlock()

	items := make([]domain.MetadataItem, len(e.metadata))
	copy(items, e.metadata)
	return items
}

// SetMetadata replaces the engine's metadata items. Metadata is part of the
// read surface only; changing it triggers no observation.
func (e *Engine) SetMetadata(items []domain.MetadataItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.metadata = items
}

// Err returns the engine's playback error, or nil when none occurred.
func (e *Engine) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.err
}

// Status returns the engine's readiness status.
func (e *Engine) Status() domain.EngineStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// Position returns the current playback position.
func (e *Engine) Position() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.position
}

// SetPosition moves the playback position. Position feeds the periodic
// progress observers; changing it triggers no attribute observation.
func (e *Engine) SetPosition(position time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = position
}

// Duration returns the item's duration, and whether it is known yet.
func (e *Engine) Duration() (time.Duration, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.duration, e.durationKnown
}

// LoadedRanges returns the buffered time ranges, oldest first.
func (e *Engine) LoadedRanges() []domain.TimeRange {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ranges := make([]domain.TimeRange, len(e.loadedRanges))
	copy(ranges, e.loadedRanges)
	return ranges
}

// SetBufferEmpty updates the buffering-empty attribute.
func (e *Engine) SetBufferEmpty(empty bool) {
	e.mu.Lock()
	if e.closed || e.bufferEmpty == empty {
		e.mu.Unlock()
		return
	}
	old := e.bufferEmpty
	e.bufferEmpty = empty
	e.mu.Unlock()

	e.notifyAttribute(domain.EngineAttributeBufferEmpty, old, empty)
}

// SetLikelyToKeepUp updates the likely-to-keep-up attribute.
func (e *Engine) SetLikelyToKeepUp(likely bool) {
	e.mu.Lock()
	if e.closed || e.likelyToKeepUp == likely {
		e.mu.Unlock()
		return
	}
	old := e.likelyToKeepUp
	e.likelyToKeepUp = likely
	e.mu.Unlock()

	e.notifyAttribute(domain.EngineAttributeLikelyToKeepUp, old, likely)
}

// SetDuration makes the item's duration known.
func (e *Engine) SetDuration(duration time.Duration) {
	e.mu.Lock()
	if e.closed || (e.durationKnown && e.duration == duration) {
		e.mu.Unlock()
		return
	}
	var old any
	if e.durationKnown {
		old = e.duration
	}
	e.duration = duration
	e.durationKnown = true
	e.mu.Unlock()

	e.notifyAttribute(domain.EngineAttributeDuration, old, duration)
}

// SetStatus updates the engine's readiness status.
func (e *Engine) SetStatus(status domain.EngineStatus) {
	e.mu.Lock()
	if e.closed || e.status == status {
		e.mu.Unlock()
		return
	}
	old := e.status
	e.status = status
	e.mu.Unlock()

	e.notifyAttribute(domain.EngineAttributeStatus, old, status)
}

// Fail records a playback error and moves the status to failed.
func (e *Engine) Fail(err error) {
	e.mu.Lock()
	e.err = err
	e.mu.Unlock()

	e.SetStatus(domain.EngineStatusFailed)
}

// AddLoadedRange appends a newly buffered time range.
func (e *Engine) AddLoadedRange(start, end time.Duration) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	old := make([]domain.TimeRange, len(e.loadedRanges))
	copy(old, e.loadedRanges)

	e.loadedRanges = append(e.loadedRanges, domain.TimeRange{Start: start, End: end})

	updated := make([]domain.TimeRange, len(e.loadedRanges))
	copy(updated, e.loadedRanges)
	e.mu.Unlock()

	e.notifyAttribute(domain.EngineAttributeLoadedTimeRanges, old, updated)
}

// PostNotification delivers a session notification to its topic's
// subscribers, on the engine's queue.
func (e *Engine) PostNotification(notification domain.Notification) {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return
	}
	e.mu.RUnlock()

	e.queue.Async(func() {
		e.notifications.Notify(string(notification.Topic), notification)
	})
}

// notifyAttribute queues one attribute transition for delivery.
func (e *Engine) notifyAttribute(attribute domain.EngineAttribute, old, updated any) {
	change := domain.AttributeChange{
		Attribute: attribute,
		Old:       old,
		New:       updated,
	}
	e.queue.Async(func() {
		e.attributes.Notify(string(attribute), change)
	})
}

// Flush blocks until every delivery queued so far has completed.
func (e *Engine) Flush() {
	e.queue.Sync(func() {})
}

// Close stops all periodic observers and the delivery queue.
// Returns ErrClosed when called twice.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return domain.ErrClosed
	}
	e.closed = true
	observers := e.periodic
	e.periodic = make(map[ports.ObservationID]*periodicObserver)
	e.mu.Unlock()

	for _, observer := range observers {
		close(observer.stop)
		<-observer.done
	}

	e.queue.Close()
	return nil
}

// Verify that Engine implements the ObservableEngine interface
var _ ports.ObservableEngine = (*Engine)(nil)
