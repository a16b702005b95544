package producer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/eddytalvala/KDEAudioPlayer/domain"
	"github.com/eddytalvala/KDEAudioPlayer/ports"
)

// Retry cycle defaults.
const (
	DefaultMaximumRetryCount = 3
	DefaultRetryTimeout      = 10 * time.Second
)

// RetryState is the retry producer's lifecycle state.
type RetryState int

const (
	// RetryStateIdle means no retry cycle is running
	RetryStateIdle RetryState = iota

	// RetryStateRetrying means the timed cycle is armed
	RetryStateRetrying

	// RetryStateExhausted means the cycle reached its maximum and emitted
	// its terminal RetryFailedEvent; the next start re-arms from scratch
	RetryStateExhausted
)

// String returns a human-readable representation of the retry state.
func (s RetryState) String() string {
	switch s {
	case RetryStateIdle:
		return "idle"
	case RetryStateRetrying:
		return "retrying"
	case RetryStateExhausted:
		return "exhausted"
	default:
		return "invalid"
	}
}

// RetryEventProducer is a timed state machine. Once started it emits a
// RetryAvailableEvent on each tick of its cadence until the tick count
// reaches maximumRetryCount, at which point it emits exactly one
// RetryFailedEvent and stops itself.
//
// With maximumRetryCount N, one cycle emits exactly N-1 RetryAvailableEvents
// followed by one RetryFailedEvent; N == 1 emits the RetryFailedEvent alone.
//
// The cadence is a backoff.BackOff policy, by default a constant interval of
// retryTimeout. A policy returning backoff.Stop before the count is reached
// ends the cycle early with its terminal RetryFailedEvent.
type RetryEventProducer struct {
	// Dependencies
	logger *slog.Logger

	// mu protects all state below
	mu sync.Mutex

	listener ports.EventListener

	maximumRetryCount int
	retryTimeout      time.Duration
	policy            backoff.BackOff
	customPolicy      bool

	retryCount int
	state      RetryState
	timer      *time.Timer
}

// NewRetryEventProducer creates an idle retry producer with the default
// count and cadence.
func NewRetryEventProducer(logger *slog.Logger) *RetryEventProducer {
	return &RetryEventProducer{
		logger:            logger,
		maximumRetryCount: DefaultMaximumRetryCount,
		retryTimeout:      DefaultRetryTimeout,
		policy:            backoff.NewConstantBackOff(DefaultRetryTimeout),
	}
}

// SetListener installs the single listener receiving this producer's events.
// Passing nil detaches the listener; subsequent events are dropped silently.
func (p *RetryEventProducer) SetListener(listener ports.EventListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = listener
}

// SetMaximumRetryCount adjusts how many ticks a cycle runs for.
// Values below 1 are ignored.
func (p *RetryEventProducer) SetMaximumRetryCount(count int) {
	if count < 1 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maximumRetryCount = count
}

// SetRetryTimeout adjusts the constant cadence. Non-positive durations are
// ignored; a custom policy installed via SetBackOffPolicy takes precedence.
func (p *RetryEventProducer) SetRetryTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.retryTimeout = timeout
	if !p.customPolicy {
		p.policy = backoff.NewConstantBackOff(timeout)
	}
}

// SetBackOffPolicy replaces the cadence policy, e.g. with an exponential
// backoff. The policy is Reset at the beginning of each cycle.
func (p *RetryEventProducer) SetBackOffPolicy(policy backoff.BackOff) {
	if policy == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.policy = policy
	p.customPolicy = true
}

// State returns the producer's current lifecycle state.
func (p *RetryEventProducer) State() RetryState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// RetryCount returns the tick count of the current cycle.
func (p *RetryEventProducer) RetryCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.retryCount
}

// StartProducingEvents begins a retry cycle: the count resets to zero, the
// policy resets and the timer arms. No-op while a cycle is already running.
// Starting from the exhausted state re-arms from scratch.
func (p *RetryEventProducer) StartProducingEvents() {
	p.mu.Lock()
	if p.state == RetryStateRetrying {
		p.mu.Unlock()
		return
	}

	p.retryCount = 0
	p.policy.Reset()

	next := p.policy.NextBackOff()
	if next == backoff.Stop {
		// Degenerate policy with no first interval: the cycle is over
		// before it begins, which still owes its one terminal event.
		p.state = RetryStateExhausted
		p.mu.Unlock()
		p.emit(domain.NewRetryFailedEvent())
		return
	}

	p.state = RetryStateRetrying
	p.timer = time.AfterFunc(next, p.tick)
	maximum := p.maximumRetryCount
	p.mu.Unlock()

	p.logger.Debug("retry cycle started",
		slog.Int("maximum_retry_count", maximum),
		slog.Duration("first_interval", next))
}

// StopProducingEvents cancels the running cycle. No new tick schedules after
// this returns; a tick already in flight is dropped. No-op unless retrying.
func (p *RetryEventProducer) StopProducingEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != RetryStateRetrying {
		return
	}

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.state = RetryStateIdle

	p.logger.Debug("retry cycle stopped", slog.Int("retry_count", p.retryCount))
}

// Close guarantees StopProducingEvents has run. Safe during host teardown.
func (p *RetryEventProducer) Close() error {
	p.StopProducingEvents()
	return nil
}

// tick runs on each timer expiry.
func (p *RetryEventProducer) tick() {
	p.mu.Lock()
	if p.state != RetryStateRetrying {
		// Canceled between arming and firing
		p.mu.Unlock()
		return
	}

	p.retryCount++

	if p.retryCount < p.maximumRetryCount {
		next := p.policy.NextBackOff()
		if next != backoff.Stop {
			// Re-arm before delivering so listener latency cannot skew the cadence
			p.timer = time.AfterFunc(next, p.tick)
			p.mu.Unlock()
			p.emit(domain.NewRetryAvailableEvent())
			return
		}
	}

	p.state = RetryStateExhausted
	p.timer = nil
	p.mu.Unlock()

	p.emit(domain.NewRetryFailedEvent())
	p.logger.Debug("retry cycle exhausted")
}

// emit delivers one event to the listener, on the caller's goroutine.
// With no listener set the event is dropped silently.
func (p *RetryEventProducer) emit(event domain.Event) {
	p.mu.Lock()
	listener := p.listener
	p.mu.Unlock()

	if listener == nil {
		return
	}
	listener.OnEvent(event, p)
}

// Verify that RetryEventProducer implements the EventProducer interface
var _ ports.EventProducer = (*RetryEventProducer)(nil)
