// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless sync client runtime.
//
// It wires the server adapter, the local store, the sync engine, and the
// background workers into a single process lifecycle with signal-driven
// shutdown.
package client
