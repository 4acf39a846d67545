// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client application runtime.
//
// It wires the durable storage, the backend and the session into a single
// process lifecycle, restores the persisted session on start and runs the
// interactive terminal UI together with its background jobs.
package client
