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

// Package clocktrust judges whether the machine's notion of time can be
// trusted. An Authority owns the trust state, verifies it at startup,
// exposes the time the display may use, and runs a background monitor that
// keeps the sync belief current for the process lifetime. Losing network
// time never stops the clock: the system degrades to offline mode and
// keeps ticking on the system clock.
package clocktrust

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/WoordklokProject/woordklok-core/pkg/config"
	"github.com/WoordklokProject/woordklok-core/pkg/timestatus"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	// clockReadLatencyLimit is the threshold for the startup clock
	// responsiveness self-test. Purely diagnostic.
	clockReadLatencyLimit = 10 * time.Millisecond
	// shutdownTimeout bounds the wait for the background monitor to stop.
	shutdownTimeout = 1 * time.Second
	// syncEventBuffer sizes the notification channel. Sends never block;
	// an unread event is dropped rather than stalling the monitor.
	syncEventBuffer = 8
)

// Authority is the single source of "time the display may use" and the
// sole writer of DST-derived state. Construct one per process and pass it
// by reference to the tick loop and the monitor.
type Authority struct {
	clock     clockwork.Clock
	probe     timestatus.Probe
	cfg       *config.Instance
	state     *TrustState
	monitor   *SyncMonitor
	events    chan SyncEvent
	dstActive func(time.Time) bool
}

// NewAuthority creates an Authority. A nil clock defaults to the real
// clock. The monitor is not started until VerifySystemTime runs.
func NewAuthority(cfg *config.Instance, probe timestatus.Probe, clock clockwork.Clock) *Authority {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Authority{
		clock:     clock,
		probe:     probe,
		cfg:       cfg,
		state:     NewTrustState(),
		events:    make(chan SyncEvent, syncEventBuffer),
		dstActive: func(t time.Time) bool { return t.IsDST() },
	}
}

// Events returns the channel of sync edge notifications produced by the
// background monitor.
func (a *Authority) Events() <-chan SyncEvent {
	return a.events
}

// State exposes the trust state for status consumers.
func (a *Authority) State() *TrustState {
	return a.state
}

// VerifySystemTime runs the startup verification sequence: timezone check,
// initial sync check, clock latency self-test, then starts the background
// monitor and opens the DST detection gate. Returns timezone verification
// only. Sync status never gates the return value: the clock must be usable
// without internet.
func (a *Authority) VerifySystemTime(ctx context.Context) bool {
	now := a.clock.Now()
	dstActive := a.dstActive(now)

	log.Info().
		Str("local_time", now.Format("2006-01-02 15:04:05")).
		Bool("dst_active", dstActive).
		Msg("verifying system time")

	a.CheckTimezone(ctx)
	a.CheckNTPSync(ctx)
	a.selfTestClockLatency(now)

	a.monitor = newSyncMonitor(
		a.state, a.probe, a.clock, a.cfg.NTPCheckInterval(), a.events)
	a.monitor.Start()

	a.state.CompleteStartup(dstActive)

	return a.state.TimezoneVerified()
}

// CheckTimezone queries the configured timezone and verifies it contains
// the expected zone identifier. Substring match, not equality: timedatectl
// reports "Europe/Amsterdam (CEST, +0200)" and we only care that the zone
// is in there. Probe failure leaves the timezone unverified.
func (a *Authority) CheckTimezone(ctx context.Context) bool {
	expected := a.cfg.ExpectedTimezone()

	reported, err := a.probe.Timezone(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("timezone check failed")
		a.state.SetTimezoneVerified(false)
		return false
	}

	verified := strings.Contains(reported, expected)
	a.state.SetTimezoneVerified(verified)

	if verified {
		log.Info().Str("timezone", reported).Msg("timezone verified")
	} else {
		log.Warn().
			Str("expected", expected).
			Str("reported", reported).
			Msgf("timezone mismatch, fix with: sudo timedatectl set-timezone %s", expected)
	}
	return verified
}

// CheckNTPSync queries the sync flag and applies it to the trust state. A
// probe failure is collapsed into a not-synced observation: "unknown" and
// "offline" are deliberately the same outcome, so the clock keeps running
// on the system clock either way.
func (a *Authority) CheckNTPSync(ctx context.Context) {
	synced, err := a.probe.NTPSynchronized(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("sync check failed, assuming offline")
		synced = false
	}

	now := a.clock.Now()
	if synced {
		a.state.RecordSyncObserved(now)
		if ts, ok := a.probe.LastSyncTimestamp(ctx); ok {
			log.Info().Str("last_sync", ts).Msg("clock synchronized with network time")
		} else {
			log.Info().Msg("clock synchronized with network time")
		}
	} else {
		a.state.RecordSyncLost(now)
		log.Warn().Msg("network time unavailable, continuing on system clock")
	}
}

// selfTestClockLatency measures one clock read. Over the limit it records
// a drift warning; control flow is unaffected either way.
func (a *Authority) selfTestClockLatency(now time.Time) {
	start := time.Now()
	_ = a.clock.Now()
	elapsed := time.Since(start)

	log.Debug().Dur("latency", elapsed).Msg("clock read self-test")

	if elapsed > clockReadLatencyLimit {
		a.state.AddDriftWarning(DriftWarning{
			Time:        now,
			Message:     "slow system clock read",
			ReadLatency: elapsed,
		})
		log.Warn().Dur("latency", elapsed).Msg("time source response is slow")
	}
}

// VerifiedTime returns the current time for the display. As a side effect
// it checks for a DST flip since the previous call. This is the hot path,
// called every display tick: no I/O, never fails, returns unconditionally.
func (a *Authority) VerifiedTime() time.Time {
	now := a.clock.Now()

	if event, flipped := a.state.ObserveDST(a.dstActive(now), now); flipped {
		log.Info().
			Str("transition", string(event.Type)).
			Bool("dst_active", event.DSTActive).
			Msg("DST transition detected")
	}

	return now
}

// OfflineDuration reports how long sync has been lost. The second return
// is false when the clock is online or no loss time is recorded.
func (a *Authority) OfflineDuration() (time.Duration, bool) {
	snap := a.state.Snapshot()
	if !snap.OfflineMode || snap.NTPLossTime.IsZero() {
		return 0, false
	}
	return a.clock.Now().Sub(snap.NTPLossTime), true
}

// StatusSummary formats a one-line trust status: online/offline with
// duration, timezone verification, and DST state. Read-only.
func (a *Authority) StatusSummary() string {
	snap := a.state.Snapshot()

	status := "ONLINE"
	if snap.OfflineMode {
		status = "OFFLINE"
		if d, ok := a.OfflineDuration(); ok {
			status = "OFFLINE " + formatOfflineDuration(d)
		}
	}

	tz := "CHECK"
	if snap.TimezoneVerified {
		tz = "OK"
	}

	dst := "Inactive"
	if a.dstActive(a.clock.Now()) {
		dst = "Active"
	}

	return fmt.Sprintf("%s | TZ: %s | DST: %s", status, tz, dst)
}

// formatOfflineDuration renders a duration as "3h25m" or "7m".
func formatOfflineDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// Shutdown stops the background monitor and waits a bounded time for it to
// exit. Safe to call when VerifySystemTime never ran.
func (a *Authority) Shutdown() {
	if a.monitor == nil {
		return
	}
	if !a.monitor.Stop(shutdownTimeout) {
		log.Warn().Msg("sync monitor did not stop within timeout")
	}
}
