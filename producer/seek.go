package producer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/eddytalvala/KDEAudioPlayer/domain"
	"github.com/eddytalvala/KDEAudioPlayer/ports"
)

// defaultSeekInterval is the press-and-hold seek repeat cadence.
const defaultSeekInterval = 350 * time.Millisecond

// SeekEventProducer emits a SeekEvent in its configured direction on a fixed
// cadence, for as long as it runs. The host arms it when a seek control is
// held down and stops it on release.
//
// Unlike the retry producer it has no terminal state: it repeats until
// stopped. The direction is its source: starting without one is a no-op, and
// changing direction while running first stops the cycle.
type SeekEventProducer struct {
	// Dependencies
	logger *slog.Logger

	// mu protects all state below
	mu sync.Mutex

	listener  ports.EventListener
	direction domain.SeekDirection
	interval  time.Duration
	running   bool
	timer     *time.Timer
}

// NewSeekEventProducer creates an idle seek producer.
func NewSeekEventProducer(logger *slog.Logger) *SeekEventProducer {
	return &SeekEventProducer{
		logger:   logger,
		interval: defaultSeekInterval,
	}
}

// SetListener installs the single listener receiving this producer's events.
// Passing nil detaches the listener; subsequent events are dropped silently.
func (p *SeekEventProducer) SetListener(listener ports.EventListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = listener
}

// SetInterval adjusts the repeat cadence. Non-positive intervals are ignored.
func (p *SeekEventProducer) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interval = interval
}

// SetDirection assigns the seek direction. Changing it while running first
// stops the cycle; the producer does not restart on its own.
func (p *SeekEventProducer) SetDirection(direction domain.SeekDirection) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		p.stopLocked()
	}
	p.direction = direction
}

// StartProducingEvents arms the repeat timer. No-op when already running or
// when no direction is set.
func (p *SeekEventProducer) StartProducingEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running || p.direction == 0 {
		return
	}

	p.running = true
	p.timer = time.AfterFunc(p.interval, p.tick)

	p.logger.Debug("seek cycle started",
		slog.String("direction", p.direction.String()),
		slog.Duration("interval", p.interval))
}

// StopProducingEvents cancels the repeat timer. No new tick schedules after
// this returns; a tick already in flight is dropped. No-op when not running.
func (p *SeekEventProducer) StopProducingEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// stopLocked cancels the cycle. Caller holds p.mu.
func (p *SeekEventProducer) stopLocked() {
	if !p.running {
		return
	}

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.running = false

	p.logger.Debug("seek cycle stopped")
}

// Close guarantees StopProducingEvents has run. Safe during host teardown.
func (p *SeekEventProducer) Close() error {
	p.StopProducingEvents()
	return nil
}

// tick runs on each timer expiry.
func (p *SeekEventProducer) tick() {
	p.mu.Lock()
	if !p.running {
		// Canceled between arming and firing
		p.mu.Unlock()
		return
	}

	direction := p.direction
	p.timer = time.AfterFunc(p.interval, p.tick)
	p.mu.Unlock()

	p.emit(domain.NewSeekEvent(direction))
}

// emit delivers one event to the listener, on the caller's goroutine.
// With no listener set the event is dropped silently.
func (p *SeekEventProducer) emit(event domain.Event) {
	p.mu.Lock()
	listener := p.listener
	p.mu.Unlock()

	if listener == nil {
		return
	}
	listener.OnEvent(event, p)
}

// Verify that SeekEventProducer implements the EventProducer interface
var _ ports.EventProducer = (*SeekEventProducer)(nil)
