// Woordklok Core
// Copyright (c) 2026 The Woordklok Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Woordklok Core.
//
// Woordklok Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Woordklok Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Woordklok Core.  If not, see <http://www.gnu.org/licenses/>.

// Package timestatus queries the OS time service for the configured
// timezone and NTP synchronization state. Probes are pure request/response:
// they hold no state, retry nothing, and report every failure as a
// ProbeError for the caller to interpret.
package timestatus

import (
	"context"
	"fmt"
	"time"
)

const (
	// StatusTimeout bounds the primary time-status query.
	StatusTimeout = 5 * time.Second
	// SyncTimestampTimeout bounds the best-effort last-sync query.
	SyncTimestampTimeout = 3 * time.Second
)

// Probe reports the OS view of timezone and time synchronization.
// Implementations must not retry internally and must release any OS
// resources (subprocesses, bus connections) before returning.
type Probe interface {
	// Timezone returns the system's configured timezone string,
	// e.g. "Europe/Amsterdam (CEST, +0200)".
	Timezone(ctx context.Context) (string, error)

	// NTPSynchronized returns whether the system clock is currently
	// synchronized to network time.
	NTPSynchronized(ctx context.Context) (bool, error)

	// LastSyncTimestamp returns a human-readable timestamp of the last
	// successful sync, best effort. The second return is false when the
	// value is unavailable; this query never produces an error.
	LastSyncTimestamp(ctx context.Context) (string, bool)
}

// ProbeError reports a failed time-status query: the external command or
// bus call was unavailable, timed out, or produced unparseable output.
type ProbeError struct {
	Cause error
	Op    string
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("time status probe: %s: %v", e.Op, e.Cause)
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

func probeErr(op string, cause error) *ProbeError {
	return &ProbeError{Op: op, Cause: cause}
}
