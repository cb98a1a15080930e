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

// Package service runs the display tick loop: every refresh interval it
// asks the clock authority for the verified time and renders it. The loop
// must survive anything: a panicking tick is logged and retried after a
// bounded delay, never allowed to kill the process.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/WoordklokProject/woordklok-core/pkg/clocktrust"
	"github.com/WoordklokProject/woordklok-core/pkg/config"
	"github.com/WoordklokProject/woordklok-core/pkg/display"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	// statusEvery is how many ticks pass between status summary log lines,
	// roughly five minutes at the default refresh interval.
	statusEvery = 300
	// panicRetryDelay is how long the loop backs off after a tick panic.
	panicRetryDelay = 5 * time.Second
)

// Args wires the service's collaborators.
type Args struct {
	Cfg       *config.Instance
	Authority *clocktrust.Authority
	Renderer  *display.Renderer
	Clock     clockwork.Clock
}

// Start launches the display tick loop and the sync notification consumer.
// Returns a stop function that halts both and shuts down the authority.
func Start(args Args) (func() error, error) {
	clock := args.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		tickLoop(ctx, clock, args)
	}()
	go func() {
		defer wg.Done()
		eventLoop(ctx, args.Authority)
	}()

	log.Info().
		Dur("refresh_interval", args.Cfg.RefreshInterval()).
		Msg("service: display loop started")

	return func() error {
		cancel()
		wg.Wait()
		args.Authority.Shutdown()
		log.Info().Msg("service: stopped")
		return nil
	}, nil
}

func tickLoop(ctx context.Context, clock clockwork.Clock, args Args) {
	ticker := clock.NewTicker(args.Cfg.RefreshInterval())
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-ticker.Chan():
			if panicked := tick(args); panicked {
				clock.Sleep(panicRetryDelay)
				continue
			}
			ticks++
			if ticks >= statusEvery {
				log.Info().Msg(args.Authority.StatusSummary())
				ticks = 0
			}
		case <-ctx.Done():
			return
		}
	}
}

// tick renders one frame. Panics are contained here so a bad tick can
// never take down the loop.
func tick(args Args) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			log.Error().Msgf("service: tick panic: %v, retrying in %s", r, panicRetryDelay)
		}
	}()

	now := args.Authority.VerifiedTime()
	if err := args.Renderer.Render(now); err != nil {
		log.Error().Err(err).Msg("service: display update failed")
		return false
	}

	// Log sparsely: once per five-minute word change, in its first seconds.
	if now.Minute()%5 == 0 && now.Second() <= 3 {
		log.Debug().
			Str("time", now.Format("15:04:05")).
			Msg("service: display updated")
	}
	return false
}

// eventLoop logs sync edges reported by the background monitor. The
// monitor already guarantees exactly one event per edge.
func eventLoop(ctx context.Context, authority *clocktrust.Authority) {
	for {
		select {
		case event := <-authority.Events():
			switch event.Type {
			case clocktrust.EventSyncRestored:
				log.Info().
					Str("at", event.Time.Format("15:04:05")).
					Msg("service: network time restored")
			case clocktrust.EventSyncLost:
				log.Warn().
					Str("at", event.Time.Format("15:04:05")).
					Msg("service: network time lost, running in offline mode")
			}
		case <-ctx.Done():
			return
		}
	}
}
