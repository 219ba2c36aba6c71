// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the syncd runtime.
//
// It wires the sync coordinators, the periodic sync job and the optional
// notification listener into a single process lifecycle.
package client
