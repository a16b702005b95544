package producer

import (
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eddytalvala/KDEAudioPlayer/domain"
	"github.com/eddytalvala/KDEAudioPlayer/internal/logger"
	"github.com/eddytalvala/KDEAudioPlayer/internal/testutil"
)

// Helper to create a retry producer with a short cadence for tests.
func newTestRetryProducer(maximum int, timeout time.Duration) (*RetryEventProducer, *recordingListener) {
	producer := NewRetryEventProducer(logger.NewTestLogger())
	producer.SetMaximumRetryCount(maximum)
	producer.SetRetryTimeout(timeout)

	listener := &recordingListener{}
	producer.SetListener(listener)

	return producer, listener
}

func TestRetryEventProducer_Sequence(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestRetryProducer(3, 20*time.Millisecond)
	defer producer.StopProducingEvents()

	producer.StartProducingEvents()
	assert.Equal(t, RetryStateRetrying, producer.State())

	require.Eventually(t, func() bool {
		return listener.Count(domain.EventRetryFailed) == 1
	}, time.Second, 5*time.Millisecond)

	// maximumRetryCount-1 RetryAvailable events, then exactly one RetryFailed
	assert.Equal(t, []domain.EventType{
		domain.EventRetryAvailable,
		domain.EventRetryAvailable,
		domain.EventRetryFailed,
	}, listener.Types())
	assert.Equal(t, RetryStateExhausted, producer.State())
	assert.Equal(t, 3, producer.RetryCount())

	// Exhausted is terminal: no further events
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 3, listener.Len())
}

func TestRetryEventProducer_MaximumOne(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestRetryProducer(1, 20*time.Millisecond)
	defer producer.StopProducingEvents()

	producer.StartProducingEvents()

	// Nothing fires before the first interval elapses
	time.Sleep(5 * time.Millisecond)
	assert.Zero(t, listener.Len())

	require.Eventually(t, func() bool {
		return listener.Count(domain.EventRetryFailed) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []domain.EventType{domain.EventRetryFailed}, listener.Types())
	assert.Zero(t, listener.Count(domain.EventRetryAvailable))
}

func TestRetryEventProducer_StopBetweenTicks(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestRetryProducer(5, 30*time.Millisecond)

	producer.StartProducingEvents()

	require.Eventually(t, func() bool {
		return listener.Count(domain.EventRetryAvailable) >= 1
	}, time.Second, 5*time.Millisecond)

	producer.StopProducingEvents()
	assert.Equal(t, RetryStateIdle, producer.State())

	// A tick already in flight may still deliver; settle before sampling
	time.Sleep(20 * time.Millisecond)
	delivered := listener.Len()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, delivered, listener.Len(), "no ticks may fire after stop")
}

func TestRetryEventProducer_StopBeforeStartIsNoOp(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestRetryProducer(3, 20*time.Millisecond)

	producer.StopProducingEvents()
	producer.StopProducingEvents()

	assert.Equal(t, RetryStateIdle, producer.State())
	assert.Zero(t, listener.Len())
}

func TestRetryEventProducer_DoubleStartIsNoOp(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestRetryProducer(3, 20*time.Millisecond)
	defer producer.StopProducingEvents()

	producer.StartProducingEvents()
	producer.StartProducingEvents()

	require.Eventually(t, func() bool {
		return listener.Count(domain.EventRetryFailed) == 1
	}, time.Second, 5*time.Millisecond)

	// A second start must not arm a second timer: still one cycle's worth
	assert.Equal(t, 2, listener.Count(domain.EventRetryAvailable))
	assert.Equal(t, 1, listener.Count(domain.EventRetryFailed))
}

func TestRetryEventProducer_RestartAfterExhaustion(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestRetryProducer(2, 15*time.Millisecond)
	defer producer.StopProducingEvents()

	producer.StartProducingEvents()
	require.Eventually(t, func() bool {
		return listener.Count(domain.EventRetryFailed) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, RetryStateExhausted, producer.State())

	// Starting again re-arms from scratch
	producer.StartProducingEvents()
	assert.Equal(t, RetryStateRetrying, producer.State())
	assert.Zero(t, producer.RetryCount())

	require.Eventually(t, func() bool {
		return listener.Count(domain.EventRetryFailed) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, listener.Count(domain.EventRetryAvailable))
}

func TestRetryEventProducer_NilListenerDropsEvents(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer := NewRetryEventProducer(logger.NewTestLogger())
	producer.SetMaximumRetryCount(2)
	producer.SetRetryTimeout(10 * time.Millisecond)
	defer producer.StopProducingEvents()

	// No listener set: the cycle still runs, deliveries are dropped
	producer.StartProducingEvents()

	require.Eventually(t, func() bool {
		return producer.State() == RetryStateExhausted
	}, time.Second, 5*time.Millisecond)
}

func TestRetryEventProducer_CustomBackOffPolicy(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestRetryProducer(4, time.Hour)
	defer producer.StopProducingEvents()

	// An exhausting policy ends the cycle early with the terminal event
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(10*time.Millisecond), 2)
	producer.SetBackOffPolicy(policy)

	producer.StartProducingEvents()

	require.Eventually(t, func() bool {
		return listener.Count(domain.EventRetryFailed) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, RetryStateExhausted, producer.State())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, listener.Count(domain.EventRetryFailed))
}

func TestRetryEventProducer_EmitsItselfAsSource(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestRetryProducer(1, 10*time.Millisecond)
	defer producer.StopProducingEvents()

	producer.StartProducingEvents()

	require.Eventually(t, func() bool {
		return listener.Len() == 1
	}, time.Second, 5*time.Millisecond)

	assert.Same(t, producer, listener.LastProducer())
}

func TestRetryEventProducer_InvalidConfigurationIgnored(t *testing.T) {
	producer := NewRetryEventProducer(logger.NewTestLogger())

	producer.SetMaximumRetryCount(0)
	producer.SetMaximumRetryCount(-2)
	producer.SetRetryTimeout(0)
	producer.SetRetryTimeout(-time.Second)
	producer.SetBackOffPolicy(nil)

	assert.Equal(t, DefaultMaximumRetryCount, producer.maximumRetryCount)
	assert.Equal(t, DefaultRetryTimeout, producer.retryTimeout)
	assert.NotNil(t, producer.policy)
}
