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
	"context"
	"time"

	"github.com/WoordklokProject/woordklok-core/pkg/timestatus"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// SyncMonitor re-polls the time-status probe on a fixed period for the
// process lifetime and applies the result to the trust state. It runs
// independently of the display loop and emits one notification per sync
// state edge. Probe failures are contained: they count as a not-synced
// observation and the loop continues.
type SyncMonitor struct {
	state    *TrustState
	probe    timestatus.Probe
	clock    clockwork.Clock
	events   chan<- SyncEvent
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	interval time.Duration
}

func newSyncMonitor(
	state *TrustState,
	probe timestatus.Probe,
	clock clockwork.Clock,
	interval time.Duration,
	events chan<- SyncEvent,
) *SyncMonitor {
	ctx, cancel := context.WithCancel(context.Background())
	return &SyncMonitor{
		state:    state,
		probe:    probe,
		clock:    clock,
		interval: interval,
		events:   events,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start launches the monitor goroutine.
func (m *SyncMonitor) Start() {
	log.Info().Dur("interval", m.interval).Msg("monitor: background sync monitoring started")
	go m.loop()
}

func (m *SyncMonitor) loop() {
	defer close(m.done)

	ticker := m.clock.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			m.poll()
		case <-m.ctx.Done():
			log.Debug().Msg("monitor: stopped")
			return
		}
	}
}

// poll runs one probe-and-update cycle. The update itself is silent; only
// state edges produce log output and notifications.
func (m *SyncMonitor) poll() {
	ctx, cancel := context.WithTimeout(m.ctx, timestatus.StatusTimeout)
	defer cancel()

	synced, err := m.probe.NTPSynchronized(ctx)
	if err != nil {
		// Can't tell is the same as offline. The loop keeps going.
		synced = false
	}

	now := m.clock.Now()
	if synced {
		wasSynced := m.state.RecordSyncObserved(now)
		if !wasSynced {
			log.Info().Msg("monitor: network time restored")
			m.notify(SyncEvent{Type: EventSyncRestored, Time: now})
		}
	} else {
		wasSynced := m.state.RecordSyncLost(now)
		if wasSynced {
			log.Warn().Msg("monitor: network time lost, continuing on system clock")
			m.notify(SyncEvent{Type: EventSyncLost, Time: now})
		}
	}
}

// notify sends without blocking. The monitor must never stall on a slow or
// absent consumer; a dropped notification only costs a log line downstream.
func (m *SyncMonitor) notify(event SyncEvent) {
	select {
	case m.events <- event:
	default:
		log.Debug().Str("event", string(event.Type)).Msg("monitor: notification dropped")
	}
}

// Stop cancels the monitor and waits up to timeout for the loop to exit.
// The loop notices cancellation at its next select, so the real bound is
// one probe in flight, not one sleep period. Returns false on timeout.
func (m *SyncMonitor) Stop(timeout time.Duration) bool {
	m.cancel()
	select {
	case <-m.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
