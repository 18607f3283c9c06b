package workers

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWorker struct {
	runs atomic.Int32
}

func (w *countingWorker) Run(ctx context.Context) {
	w.runs.Add(1)
	<-ctx.Done()
}

func TestWorkers_RunsAllUntilCancelled(t *testing.T) {
	w1, w2 := &countingWorker{}, &countingWorker{}
	ws := NewWorkers(w1, w2)
	require.Equal(t, 2, ws.Len())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return w1.runs.Load() == 1 && w2.runs.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWorkers_Empty(t *testing.T) {
	NewWorkers().Run(context.Background())
}

// startTicker runs w in the background and waits until its ticker exists.
func startTicker(t *testing.T, w *TickerWorker, clock *clockwork.FakeClock) (context.CancelFunc, <-chan struct{}) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))

	return cancel, done
}

func TestTickerWorker_RunsOnEveryTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	calls := make(chan struct{}, 10)
	job := func(context.Context) error {
		calls <- struct{}{}
		return nil
	}

	w := NewTickerWorker("news", time.Minute, job, logger.Nop(), WithClock(clock))
	cancel, done := startTicker(t, w, clock)
	defer cancel()

	assert.Empty(t, calls, "job must wait for the first tick")

	for range 3 {
		clock.Advance(time.Minute)
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("job was not called on tick")
		}
	}

	cancel()
	<-done
}

func TestTickerWorker_RunOnStart(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var calls atomic.Int32
	job := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	w := NewTickerWorker("digest", time.Hour, job, logger.Nop(), WithClock(clock), WithRunOnStart())
	cancel, done := startTicker(t, w, clock)

	assert.Equal(t, int32(1), calls.Load())

	cancel()
	<-done
}

func TestTickerWorker_ErrorsDoNotStopSchedule(t *testing.T) {
	var buf bytes.Buffer
	clock := clockwork.NewFakeClock()
	calls := make(chan struct{}, 10)
	job := func(context.Context) error {
		calls <- struct{}{}
		return errors.New("feed unreachable")
	}

	w := NewTickerWorker("news", time.Minute, job, logger.New("test", &buf), WithClock(clock))
	cancel, done := startTicker(t, w, clock)

	for range 2 {
		clock.Advance(time.Minute)
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("job was not called on tick")
		}
	}

	cancel()
	<-done

	assert.Contains(t, buf.String(), "feed unreachable")
	assert.Contains(t, buf.String(), `"worker":"news"`)
}

func TestTickerWorker_DisabledInterval(t *testing.T) {
	job := func(context.Context) error {
		t.Fatal("disabled worker must not run its job")
		return nil
	}

	w := NewTickerWorker("digest", 0, job, logger.Nop(), WithRunOnStart())

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled worker must return immediately")
	}
}
