package workers

import "context"

// Workers starts and stops a fixed set of workers together.
type Workers struct {
	workers []Worker
}

// NewWorkers groups workers. They are started in the given order and stopped
// in reverse.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start starts every worker.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops every worker and waits for each one to exit.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
