// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Interactive is a long-running front end driven by [App.Run].
type Interactive interface {
	// Run blocks until the user leaves the UI or ctx is cancelled.
	Run(ctx context.Context) error
	// Refresh reloads whatever the UI shows from the backend. It is called
	// periodically while Run is active.
	Refresh(ctx context.Context) error
}
