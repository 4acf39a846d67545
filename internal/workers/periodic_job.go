// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-client-desk/internal/logger"
)

// DefaultInterval is used when a job is created with a non-positive interval.
const DefaultInterval = time.Minute

// PeriodicJob calls its task on a ticker. The first call happens one interval
// after Start. Task errors are logged and do not stop the job.
type PeriodicJob struct {
	name     string
	interval time.Duration
	task     Task
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPeriodicJob creates an idle job. name only labels log entries.
func NewPeriodicJob(name string, interval time.Duration, task Task, log *logger.Logger) *PeriodicJob {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.Nop()
	}

	return &PeriodicJob{
		name:     name,
		interval: interval,
		task:     task,
		logger:   log,
	}
}

// Interval returns the period the job runs with.
func (j *PeriodicJob) Interval() time.Duration {
	return j.interval
}

// Start implements Worker. A running job is stopped first, so Start never
// leaves two goroutines behind.
func (j *PeriodicJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

// Stop implements Worker.
func (j *PeriodicJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *PeriodicJob) runOnce(ctx context.Context) {
	if err := j.task(ctx); err != nil && ctx.Err() == nil {
		j.logger.Warn().Err(err).Str("job", j.name).Msg("periodic job failed")
	}
}
