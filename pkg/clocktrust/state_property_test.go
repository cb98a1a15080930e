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

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

// TestPropertyLossTimeSticky verifies that under any observation sequence
// the loss time is always the first not-synced observation after the most
// recent synced one, and empty while synced.
func TestPropertyLossTimeSticky(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		observations := rapid.SliceOfN(rapid.Bool(), 1, 50).Draw(t, "observations")

		state := NewTrustState()
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		var wantLoss time.Time
		for i, synced := range observations {
			now := base.Add(time.Duration(i) * time.Minute)
			if synced {
				state.RecordSyncObserved(now)
				wantLoss = time.Time{}
			} else {
				state.RecordSyncLost(now)
				if wantLoss.IsZero() {
					wantLoss = now
				}
			}

			snap := state.Snapshot()
			if !snap.NTPLossTime.Equal(wantLoss) {
				t.Fatalf("after observation %d (%v): loss time %v, want %v",
					i, synced, snap.NTPLossTime, wantLoss)
			}
			if snap.NTPSynced != synced {
				t.Fatalf("after observation %d: synced %v, want %v",
					i, snap.NTPSynced, synced)
			}
			if snap.OfflineMode == synced {
				t.Fatalf("after observation %d: offline %v with synced %v",
					i, snap.OfflineMode, synced)
			}
		}
	})
}

// TestPropertySyncEdgesReportedOnce verifies the previous-belief return
// values of the record methods report each edge exactly once: the number of
// detected edges equals the number of adjacent changes in the sequence.
func TestPropertySyncEdgesReportedOnce(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		observations := rapid.SliceOfN(rapid.Bool(), 2, 50).Draw(t, "observations")

		state := NewTrustState()
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		// Seed the initial belief, then count detected edges.
		if observations[0] {
			state.RecordSyncObserved(base)
		} else {
			state.RecordSyncLost(base)
		}

		edges := 0
		wantEdges := 0
		for i, synced := range observations[1:] {
			now := base.Add(time.Duration(i+1) * time.Minute)
			if synced != observations[i] {
				wantEdges++
			}

			var wasSynced bool
			if synced {
				wasSynced = state.RecordSyncObserved(now)
				if !wasSynced {
					edges++
				}
			} else {
				wasSynced = state.RecordSyncLost(now)
				if wasSynced {
					edges++
				}
			}
		}

		if edges != wantEdges {
			t.Fatalf("detected %d edges, want %d for %v", edges, wantEdges, observations)
		}
	})
}

// TestPropertyDSTFlipPerFlagChange verifies ObserveDST appends exactly one
// transition per flag change, correctly typed, and that the log length is
// the number of changes bounded by the cap.
func TestPropertyDSTFlipPerFlagChange(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		flags := rapid.SliceOfN(rapid.Bool(), 1, 100).Draw(t, "flags")

		state := NewTrustState()
		state.CompleteStartup(flags[0])
		base := time.Date(2026, 3, 29, 2, 0, 0, 0, time.UTC)

		flips := 0
		last := flags[0]
		for i, flag := range flags[1:] {
			now := base.Add(time.Duration(i) * time.Second)
			event, flipped := state.ObserveDST(flag, now)

			if flag == last {
				if flipped {
					t.Fatalf("observation %d: flip reported for unchanged flag %v", i, flag)
				}
				continue
			}

			flips++
			if !flipped {
				t.Fatalf("observation %d: flag changed %v->%v but no flip reported",
					i, last, flag)
			}
			wantType := TransitionFallBack
			if flag {
				wantType = TransitionSpringForward
			}
			if event.Type != wantType {
				t.Fatalf("observation %d: transition %s, want %s", i, event.Type, wantType)
			}
			if event.DSTActive != flag {
				t.Fatalf("observation %d: event flag %v, want %v", i, event.DSTActive, flag)
			}
			last = flag
		}

		wantLen := flips
		if wantLen > maxDSTTransitions {
			wantLen = maxDSTTransitions
		}
		if got := len(state.Snapshot().DSTTransitions); got != wantLen {
			t.Fatalf("transition log length %d, want %d", got, wantLen)
		}
	})
}
