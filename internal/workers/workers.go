package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Workers runs a set of workers side by side.
type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Len returns the number of registered workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker and blocks until all of them return.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}

// TickerWorker calls a [Job] every interval. A run still in progress delays
// the next tick instead of overlapping with it.
type TickerWorker struct {
	name       string
	interval   time.Duration
	job        Job
	runOnStart bool

	clock  clockwork.Clock
	logger *logger.Logger
}

// TickerOption configures a [TickerWorker].
type TickerOption func(*TickerWorker)

// WithRunOnStart runs the job once before the first tick.
func WithRunOnStart() TickerOption {
	return func(w *TickerWorker) {
		w.runOnStart = true
	}
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clock clockwork.Clock) TickerOption {
	return func(w *TickerWorker) {
		w.clock = clock
	}
}

func NewTickerWorker(name string, interval time.Duration, job Job, logger *logger.Logger, opts ...TickerOption) *TickerWorker {
	w := &TickerWorker{
		name:     name,
		interval: interval,
		job:      job,
		clock:    clockwork.NewRealClock(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *TickerWorker) Run(ctx context.Context) {
	log := w.logger.GetChildLogger()
	log.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("worker", w.name)
	})

	if w.interval <= 0 {
		log.Info().Msg("worker disabled")
		return
	}

	ctx = log.WithContext(ctx)
	log.Info().Dur("interval", w.interval).Msg("worker started")

	if w.runOnStart {
		w.runJob(ctx)
	}

	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopped")
			return
		case <-ticker.Chan():
			w.runJob(ctx)
		}
	}
}

func (w *TickerWorker) runJob(ctx context.Context) {
	log := logger.FromContext(ctx)
	start := w.clock.Now()

	if err := w.job(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Err(err).Str("func", "*TickerWorker.runJob").Msg("job failed")
		return
	}

	log.Debug().Dur("duration", w.clock.Since(start)).Msg("job finished")
}
