// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingWorker appends its lifecycle events to a shared log.
type recordingWorker struct {
	id  string
	log *[]string
}

func (w *recordingWorker) Start(context.Context) {
	*w.log = append(*w.log, "start "+w.id)
}

func (w *recordingWorker) Stop() {
	*w.log = append(*w.log, "stop "+w.id)
}

func TestWorkers_StartsInOrderStopsInReverse(t *testing.T) {
	var events []string
	ws := NewWorkers(
		&recordingWorker{id: "1", log: &events},
		&recordingWorker{id: "2", log: &events},
		&recordingWorker{id: "3", log: &events},
	)

	ws.Start(context.Background())
	ws.Stop()

	assert.Equal(t, []string{
		"start 1", "start 2", "start 3",
		"stop 3", "stop 2", "stop 1",
	}, events)
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers()

	assert.NotPanics(t, func() {
		ws.Start(context.Background())
		ws.Stop()
	})
}

func TestWorkers_ZeroValue(t *testing.T) {
	ws := &Workers{}

	assert.NotPanics(t, func() {
		ws.Start(context.Background())
		ws.Stop()
	})
}
