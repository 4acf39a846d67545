// Package workers runs background jobs of the interactive client.
//
// It defines the [Worker] lifecycle contract, the [Workers] aggregate that
// starts and stops several workers as one, and [PeriodicJob], a worker that
// calls a task on a fixed interval.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start must not block: implementations spawn their own goroutines and keep
// running until ctx is cancelled or Stop is called. Stop blocks until the
// worker has fully exited and is safe to call on a worker that is not
// running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Task is a unit of work run by [PeriodicJob].
type Task func(ctx context.Context) error
