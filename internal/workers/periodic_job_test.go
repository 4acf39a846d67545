package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterTask(calls *atomic.Int32, err error) Task {
	return func(context.Context) error {
		calls.Add(1)
		return err
	}
}

func TestNewPeriodicJob_DefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, NewPeriodicJob("x", 0, counterTask(new(atomic.Int32), nil), nil).Interval())
	assert.Equal(t, DefaultInterval, NewPeriodicJob("x", -time.Second, counterTask(new(atomic.Int32), nil), nil).Interval())
	assert.Equal(t, time.Second, NewPeriodicJob("x", time.Second, counterTask(new(atomic.Int32), nil), nil).Interval())
}

func TestPeriodicJob_RunsOnEveryTick(t *testing.T) {
	var calls atomic.Int32
	job := NewPeriodicJob("refresh", 10*time.Millisecond, counterTask(&calls, nil), nil)

	job.Start(context.Background())
	defer job.Stop()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestPeriodicJob_KeepsRunningAfterTaskError(t *testing.T) {
	var calls atomic.Int32
	job := NewPeriodicJob("refresh", 10*time.Millisecond, counterTask(&calls, errors.New("backend down")), nil)

	job.Start(context.Background())
	defer job.Stop()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestPeriodicJob_NoCallBeforeFirstInterval(t *testing.T) {
	var calls atomic.Int32
	job := NewPeriodicJob("refresh", time.Hour, counterTask(&calls, nil), nil)

	job.Start(context.Background())
	job.Stop()

	assert.Equal(t, int32(0), calls.Load())
}

func TestPeriodicJob_StopWaitsForExit(t *testing.T) {
	var calls atomic.Int32
	job := NewPeriodicJob("refresh", 5*time.Millisecond, counterTask(&calls, nil), nil)

	job.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, time.Millisecond)
	job.Stop()

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestPeriodicJob_StopsOnContextCancel(t *testing.T) {
	var calls atomic.Int32
	job := NewPeriodicJob("refresh", 5*time.Millisecond, counterTask(&calls, nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx)
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not exit after context cancel")
	}
}

func TestPeriodicJob_RestartReplacesRunningLoop(t *testing.T) {
	var calls atomic.Int32
	job := NewPeriodicJob("refresh", 5*time.Millisecond, counterTask(&calls, nil), nil)

	job.Start(context.Background())
	job.Start(context.Background())
	job.Stop()

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestPeriodicJob_StopWithoutStart(t *testing.T) {
	job := NewPeriodicJob("refresh", time.Second, counterTask(new(atomic.Int32), nil), nil)

	assert.NotPanics(t, job.Stop)
}
