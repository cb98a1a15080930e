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
	"time"

	"github.com/WoordklokProject/woordklok-core/pkg/helpers/syncutil"
)

// TransitionType classifies a DST flag flip.
type TransitionType string

const (
	// TransitionSpringForward means the DST flag turned on.
	TransitionSpringForward TransitionType = "spring_forward"
	// TransitionFallBack means the DST flag turned off.
	TransitionFallBack TransitionType = "fall_back"
)

const (
	// maxDSTTransitions caps the transition log. DST flips twice a year,
	// so the cap is unreachable in practice; it bounds memory by
	// construction for a record that lives the whole process lifetime.
	maxDSTTransitions = 64
	// maxDriftWarnings caps the drift warning buffer; oldest entries are
	// evicted first.
	maxDriftWarnings = 10
)

// DSTTransitionEvent records one observed DST flag flip. Immutable once
// appended.
type DSTTransitionEvent struct {
	Time      time.Time
	Type      TransitionType
	DSTActive bool
}

// DriftWarning records a clock reliability concern, currently produced by
// the startup latency self-test.
type DriftWarning struct {
	Time        time.Time
	Message     string
	ReadLatency time.Duration
}

// TrustState holds the current belief about the system clock. It is
// created once at process start and mutated from two paths: the display
// tick path (DST fields) and the background monitor (sync fields). A
// single mutex guards the whole record; both writers are low-frequency.
type TrustState struct {
	lastNTPSyncTime  time.Time
	ntpLossTime      time.Time
	dstTransitions   []DSTTransitionEvent
	driftWarnings    []DriftWarning
	mu               syncutil.RWMutex
	timezoneVerified bool
	ntpSynced        bool
	offlineMode      bool
	lastDSTState     bool
	lastDSTKnown     bool
	startupDone      bool
}

// Snapshot is a point-in-time copy of TrustState for readers.
type Snapshot struct {
	LastNTPSyncTime  time.Time
	NTPLossTime      time.Time
	DSTTransitions   []DSTTransitionEvent
	DriftWarnings    []DriftWarning
	TimezoneVerified bool
	NTPSynced        bool
	OfflineMode      bool
	LastDSTState     bool
	LastDSTKnown     bool
	StartupDone      bool
}

// NewTrustState creates an empty trust state: nothing verified, no sync
// belief, startup diagnostics pending.
func NewTrustState() *TrustState {
	return &TrustState{}
}

// SetTimezoneVerified records the startup timezone check outcome.
func (s *TrustState) SetTimezoneVerified(verified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timezoneVerified = verified
}

// TimezoneVerified reports whether the configured timezone matched.
func (s *TrustState) TimezoneVerified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timezoneVerified
}

// RecordSyncObserved applies a "synchronized" observation: sync belief on,
// loss time cleared, offline mode off. Returns the previous sync belief so
// callers can detect the restored edge.
func (s *TrustState) RecordSyncObserved(now time.Time) (wasSynced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wasSynced = s.ntpSynced
	s.ntpSynced = true
	s.lastNTPSyncTime = now
	s.ntpLossTime = time.Time{}
	s.offlineMode = false
	return wasSynced
}

// RecordSyncLost applies a "not synchronized" observation. The loss time is
// sticky: it is set only on the first loss observation and survives
// repeated losses, so offline duration measures from the original loss.
// Returns the previous sync belief so callers can detect the lost edge.
func (s *TrustState) RecordSyncLost(now time.Time) (wasSynced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wasSynced = s.ntpSynced
	s.ntpSynced = false
	s.offlineMode = true
	if s.ntpLossTime.IsZero() {
		s.ntpLossTime = now
	}
	return wasSynced
}

// CompleteStartup seeds the DST baseline and opens the gate for DST flip
// detection. Called exactly once, at the end of startup verification.
func (s *TrustState) CompleteStartup(dstActive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDSTState = dstActive
	s.lastDSTKnown = true
	s.startupDone = true
}

// ObserveDST compares the current DST flag against the last observed one
// and appends a transition event on a flip. Inert until startup completes.
// Flips are only detectable at tick granularity: multiple flips between
// observations collapse to the last observed value.
func (s *TrustState) ObserveDST(dstActive bool, now time.Time) (DSTTransitionEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.startupDone || !s.lastDSTKnown || dstActive == s.lastDSTState {
		return DSTTransitionEvent{}, false
	}

	transition := TransitionFallBack
	if dstActive {
		transition = TransitionSpringForward
	}
	event := DSTTransitionEvent{
		Time:      now,
		Type:      transition,
		DSTActive: dstActive,
	}

	s.dstTransitions = append(s.dstTransitions, event)
	if len(s.dstTransitions) > maxDSTTransitions {
		s.dstTransitions = s.dstTransitions[len(s.dstTransitions)-maxDSTTransitions:]
	}
	s.lastDSTState = dstActive

	return event, true
}

// AddDriftWarning appends a warning, evicting the oldest past capacity.
func (s *TrustState) AddDriftWarning(warning DriftWarning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.driftWarnings = append(s.driftWarnings, warning)
	if len(s.driftWarnings) > maxDriftWarnings {
		s.driftWarnings = s.driftWarnings[len(s.driftWarnings)-maxDriftWarnings:]
	}
}

// Snapshot returns a consistent copy of the whole record.
func (s *TrustState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		TimezoneVerified: s.timezoneVerified,
		NTPSynced:        s.ntpSynced,
		OfflineMode:      s.offlineMode,
		LastNTPSyncTime:  s.lastNTPSyncTime,
		NTPLossTime:      s.ntpLossTime,
		LastDSTState:     s.lastDSTState,
		LastDSTKnown:     s.lastDSTKnown,
		StartupDone:      s.startupDone,
	}
	if len(s.dstTransitions) > 0 {
		snap.DSTTransitions = append([]DSTTransitionEvent(nil), s.dstTransitions...)
	}
	if len(s.driftWarnings) > 0 {
		snap.DriftWarnings = append([]DriftWarning(nil), s.driftWarnings...)
	}
	return snap
}
