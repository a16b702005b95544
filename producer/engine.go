package producer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/eddytalvala/KDEAudioPlayer/domain"
	"github.com/eddytalvala/KDEAudioPlayer/ports"
)

// defaultProgressInterval is how often the engine reports playback progress.
const defaultProgressInterval = 500 * time.Millisecond

// EngineEventProducer observes the media engine: five playback attributes,
// five session notification topics and a periodic progress callback, each
// translated into its typed event per the mapping below.
//
//	buffering-empty → true        StartedBufferingEvent
//	likely-to-keep-up → true      ReadyToPlayEvent
//	duration becomes known        LoadedDurationEvent, then LoadedMetadataEvent
//	status → failed               EndedPlayingEvent carrying the engine error
//	loaded ranges gain a range    LoadedMoreRangeEvent (most recent range only)
//	progress tick                 ProgressedEvent, every tick
//	item finished                 EndedPlayingEvent with nil error
//	interruption began            InterruptionBeganEvent
//	interruption ended + resume   InterruptionEndedEvent (no event without the resume option)
//	route changed                 RouteChangedEvent
//	session reset                 SessionMessedUpEvent
//
// Unrecognized attribute keys, topics or payload types are silently ignored.
type EngineEventProducer struct {
	// Dependencies
	logger *slog.Logger

	// mu protects all state below
	mu sync.Mutex

	engine           ports.ObservableEngine
	listener         ports.EventListener
	listening        bool
	progressInterval time.Duration

	attributeObs     []ports.ObservationID
	notificationSubs []ports.ObservationID
	periodicID       ports.ObservationID
}

// NewEngineEventProducer creates an idle engine event producer.
func NewEngineEventProducer(logger *slog.Logger) *EngineEventProducer {
	return &EngineEventProducer{
		logger:           logger,
		progressInterval: defaultProgressInterval,
	}
}

// SetListener installs the single listener receiving this producer's events.
// Passing nil detaches the listener; subsequent events are dropped silently.
func (p *EngineEventProducer) SetListener(listener ports.EventListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = listener
}

// SetProgressInterval adjusts the progress cadence for the next start.
// Non-positive intervals are ignored.
func (p *EngineEventProducer) SetProgressInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progressInterval = interval
}

// SetEngine assigns the engine to observe. Assigning a new engine while
// listening first tears down every subscription on the old engine; the
// producer does not restart on its own.
func (p *EngineEventProducer) SetEngine(engine ports.ObservableEngine) {
	p.StopProducingEvents()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.engine = engine
}

// StartProducingEvents subscribes to the engine's attributes, its session
// notification topics and the periodic progress callback.
// No-op when already listening or when no engine is set.
func (p *EngineEventProducer) StartProducingEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.listening || p.engine == nil {
		return
	}

	for _, attribute := range domain.EngineAttributes {
		id := p.engine.ObserveAttribute(attribute, p.handleAttributeChange)
		p.attributeObs = append(p.attributeObs, id)
	}

	for _, topic := range domain.NotificationTopics {
		id := p.engine.SubscribeNotifications(topic, p.handleNotification)
		p.notificationSubs = append(p.notificationSubs, id)
	}

	p.periodicID = p.engine.AddPeriodicObserver(p.progressInterval, p.handleProgress)
	p.listening = true

	p.logger.Debug("engine event producer started",
		slog.Int("attributes", len(p.attributeObs)),
		slog.Int("notifications", len(p.notificationSubs)),
		slog.Duration("progress_interval", p.progressInterval))
}

// StopProducingEvents removes every subscription created by
// StartProducingEvents. No-op when not listening. A delivery already in
// flight on the engine's queue may still arrive; nothing is scheduled after
// this returns.
func (p *EngineEventProducer) StopProducingEvents() {
	p.mu.Lock()
	if !p.listening {
		p.mu.Unlock()
		return
	}

	engine := p.engine
	attributeObs := p.attributeObs
	notificationSubs := p.notificationSubs
	periodicID := p.periodicID

	p.attributeObs = nil
	p.notificationSubs = nil
	p.periodicID = ""
	p.listening = false
	p.mu.Unlock()

	// Teardown happens outside the lock: removing the periodic observer
	// waits for its ticker, which must not race the delivery path into p.mu.
	for _, id := range attributeObs {
		engine.UnobserveAttribute(id)
	}
	for _, id := range notificationSubs {
		engine.UnsubscribeNotifications(id)
	}
	engine.RemovePeriodicObserver(periodicID)

	p.logger.Debug("engine event producer stopped")
}

// Close guarantees StopProducingEvents has run. Safe during host teardown.
func (p *EngineEventProducer) Close() error {
	p.StopProducingEvents()
	return nil
}

// handleAttributeChange maps one attribute transition to its event.
func (p *EngineEventProducer) handleAttributeChange(change domain.AttributeChange) {
	switch change.Attribute {
	case domain.EngineAttributeDuration:
		duration, ok := change.New.(time.Duration)
		if !ok {
			// Duration observation without a value; suppress rather than
			// emit a partial event.
			return
		}
		p.emit(domain.NewLoadedDurationEvent(duration))
		if engine := p.currentEngine(); engine != nil {
			p.emit(domain.NewLoadedMetadataEvent(engine.Metadata()))
		}

	case domain.EngineAttributeBufferEmpty:
		if empty, ok := change.New.(bool); ok && empty {
			p.emit(domain.NewStartedBufferingEvent())
		}

	case domain.EngineAttributeLikelyToKeepUp:
		if likely, ok := change.New.(bool); ok && likely {
			p.emit(domain.NewReadyToPlayEvent())
		}

	case domain.EngineAttributeStatus:
		if status, ok := change.New.(domain.EngineStatus); ok && status == domain.EngineStatusFailed {
			var err error
			if engine := p.currentEngine(); engine != nil {
				err = engine.Err()
			}
			p.emit(domain.NewEndedPlayingEvent(err))
		}

	case domain.EngineAttributeLoadedTimeRanges:
		ranges, ok := change.New.([]domain.TimeRange)
		if !ok || len(ranges) == 0 {
			return
		}
		latest := ranges[len(ranges)-1]
		p.emit(domain.NewLoadedMoreRangeEvent(latest.Start, latest.End))

	default:
		// Unrecognized keys are ignored
		p.logger.Debug("ignoring unrecognized attribute change",
			slog.String("attribute", string(change.Attribute)))
	}
}

// handleNotification maps one session notification to its event.
func (p *EngineEventProducer) handleNotification(notification domain.Notification) {
	switch notification.Topic {
	case domain.TopicInterruptionBegan:
		p.emit(domain.NewInterruptionBeganEvent())

	case domain.TopicInterruptionEnded:
		if notification.ShouldResume {
			p.emit(domain.NewInterruptionEndedEvent())
		}

	case domain.TopicRouteChanged:
		p.emit(domain.NewRouteChangedEvent())

	case domain.TopicSessionReset:
		p.emit(domain.NewSessionMessedUpEvent())

	case domain.TopicItemFinished:
		p.emit(domain.NewEndedPlayingEvent(nil))

	default:
		// Unrecognized topics are ignored
		p.logger.Debug("ignoring unrecognized notification",
			slog.String("topic", string(notification.Topic)))
	}
}

// handleProgress emits a ProgressedEvent on every tick, unconditionally.
func (p *EngineEventProducer) handleProgress(position time.Duration) {
	p.emit(domain.NewProgressedEvent(position))
}

// currentEngine returns the observed engine for re-reads inside handlers.
func (p *EngineEventProducer) currentEngine() ports.ObservableEngine {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine
}

// emit delivers one event to the listener, on the caller's goroutine.
// With no listener set the event is dropped silently.
func (p *EngineEventProducer) emit(event domain.Event) {
	p.mu.Lock()
	listener := p.listener
	p.mu.Unlock()

	if listener == nil {
		return
	}
	listener.OnEvent(event, p)
}

// Verify that EngineEventProducer implements the EventProducer interface
var _ ports.EventProducer = (*EngineEventProducer)(nil)
