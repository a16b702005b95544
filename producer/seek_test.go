package producer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eddytalvala/KDEAudioPlayer/domain"
	"github.com/eddytalvala/KDEAudioPlayer/internal/logger"
	"github.com/eddytalvala/KDEAudioPlayer/internal/testutil"
)

// Helper to create a seek producer with a short cadence for tests.
func newTestSeekProducer(direction domain.SeekDirection) (*SeekEventProducer, *recordingListener) {
	producer := NewSeekEventProducer(logger.NewTestLogger())
	producer.SetInterval(10 * time.Millisecond)

	listener := &recordingListener{}
	producer.SetListener(listener)

	if direction != 0 {
		producer.SetDirection(direction)
	}

	return producer, listener
}

func TestSeekEventProducer_RepeatsUntilStopped(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestSeekProducer(domain.SeekForward)

	producer.StartProducingEvents()

	require.Eventually(t, func() bool {
		return listener.Count(domain.EventSeekForward) >= 3
	}, time.Second, 5*time.Millisecond)

	producer.StopProducingEvents()

	// A tick already in flight may still deliver; settle before sampling
	time.Sleep(20 * time.Millisecond)
	delivered := listener.Len()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, delivered, listener.Len(), "no ticks may fire after stop")
}

func TestSeekEventProducer_BackwardDirection(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestSeekProducer(domain.SeekBackward)
	defer producer.StopProducingEvents()

	producer.StartProducingEvents()

	require.Eventually(t, func() bool {
		return listener.Count(domain.EventSeekBackward) >= 1
	}, time.Second, 5*time.Millisecond)

	assert.Zero(t, listener.Count(domain.EventSeekForward))
}

func TestSeekEventProducer_StartWithoutDirectionIsNoOp(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestSeekProducer(0)

	producer.StartProducingEvents()

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, listener.Len())
}

func TestSeekEventProducer_SetDirectionWhileRunningStops(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	producer, listener := newTestSeekProducer(domain.SeekForward)
	defer producer.StopProducingEvents()

	producer.StartProducingEvents()

	require.Eventually(t, func() bool {
		return listener.Count(domain.EventSeekForward) >= 1
	}, time.Second, 5*time.Millisecond)

	producer.SetDirection(domain.SeekBackward)

	// A tick already in flight may still deliver; settle before sampling
	time.Sleep(20 * time.Millisecond)
	delivered := listener.Len()

	// Changing direction stops the cycle; no implicit restart
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, delivered, listener.Len())

	producer.StartProducingEvents()
	require.Eventually(t, func() bool {
		return listener.Count(domain.EventSeekBackward) >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestSeekEventProducer_StopBeforeStartIsNoOp(t *testing.T) {
	producer, listener := newTestSeekProducer(domain.SeekForward)

	producer.StopProducingEvents()
	producer.StopProducingEvents()

	assert.Zero(t, listener.Len())
}
