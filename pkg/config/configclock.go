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

package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultNTPCheckInterval = 5 * time.Minute
	DefaultRefreshInterval  = 1 * time.Second
)

func (c *Instance) ExpectedTimezone() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Clock.ExpectedTimezone
}

func (c *Instance) ProbeBackend() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Clock.ProbeBackend == "" {
		return ProbeBackendTimedatectl
	}
	return c.vals.Clock.ProbeBackend
}

// NTPCheckInterval returns the background sync monitor period. Invalid or
// missing values fall back to the default rather than erroring, so a bad
// config edit can't stop monitoring entirely.
func (c *Instance) NTPCheckInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return parseIntervalLocked(c.vals.Clock.NTPCheckInterval, DefaultNTPCheckInterval)
}

func (c *Instance) RefreshInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return parseIntervalLocked(c.vals.Clock.RefreshInterval, DefaultRefreshInterval)
}

func parseIntervalLocked(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Msgf("invalid interval %q, using default %s", raw, fallback)
		return fallback
	}
	return d
}

func (c *Instance) LEDCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Panel.LEDCount <= 0 {
		return c.defaults.Panel.LEDCount
	}
	return c.vals.Panel.LEDCount
}

func (c *Instance) Brightness() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Panel.Brightness
}

// PanelColor returns the configured RGB display colour, falling back to the
// default when the config value is malformed.
func (c *Instance) PanelColor() (r, g, b uint8) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	col := c.vals.Panel.Color
	if len(col) != 3 {
		col = c.defaults.Panel.Color
	}
	return clampColor(col[0]), clampColor(col[1]), clampColor(col[2])
}

func clampColor(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
