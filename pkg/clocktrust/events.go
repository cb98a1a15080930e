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

package clocktrust

import "time"

// SyncEventType identifies a sync state edge observed by the monitor.
type SyncEventType string

const (
	// EventSyncLost is emitted once when synchronization transitions from
	// available to unavailable.
	EventSyncLost SyncEventType = "sync.lost"
	// EventSyncRestored is emitted once when synchronization transitions
	// from unavailable to available.
	EventSyncRestored SyncEventType = "sync.restored"
)

// SyncEvent is an edge-triggered notification. Steady states emit nothing.
type SyncEvent struct {
	Time time.Time
	Type SyncEventType
}
