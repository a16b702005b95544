package dispatch

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eddytalvala/KDEAudioPlayer/internal/testutil"
)

func TestSerialQueue_RunsTasksInSubmissionOrder(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	queue := NewSerialQueue()
	defer queue.Close()

	var order []int
	for i := 1; i <= 100; i++ {
		n := i
		queue.Async(func() { order = append(order, n) })
	}

	// Sync acts as a barrier for everything submitted before it
	queue.Sync(func() {})

	assert.Len(t, order, 100)
	for i, n := range order {
		assert.Equal(t, i+1, n)
	}
}

func TestSerialQueue_SyncWaitsForTask(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	queue := NewSerialQueue()
	defer queue.Close()

	var ran atomic.Bool
	queue.Sync(func() { ran.Store(true) })

	assert.True(t, ran.Load())
}

func TestSerialQueue_CloseRunsPendingTasks(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	queue := NewSerialQueue()

	var count atomic.Int32
	for i := 0; i < 10; i++ {
		queue.Async(func() { count.Add(1) })
	}

	queue.Close()
	assert.Equal(t, int32(10), count.Load())
}

func TestSerialQueue_SubmitAfterCloseIsNoOp(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	queue := NewSerialQueue()
	queue.Close()

	queue.Async(func() { t.Error("task ran after close") })
	queue.Sync(func() { t.Error("task ran after close") })
}

func TestSerialQueue_DoubleCloseIsSafe(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	queue := NewSerialQueue()
	queue.Close()
	queue.Close()
}
