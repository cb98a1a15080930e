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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, CfgFile))
	assert.Equal(t, "Europe/Amsterdam", cfg.ExpectedTimezone())
	assert.Equal(t, ProbeBackendTimedatectl, cfg.ProbeBackend())
	assert.Equal(t, 5*time.Minute, cfg.NTPCheckInterval())
	assert.Equal(t, 1*time.Second, cfg.RefreshInterval())
	assert.Equal(t, 64, cfg.LEDCount())

	r, g, b := cfg.PanelColor()
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(255), g)
	assert.Equal(t, uint8(100), b)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	raw := `config_schema = 1
debug_logging = true

[clock]
expected_timezone = "Europe/Berlin"
probe_backend = "dbus"
ntp_check_interval = "2m"

[panel]
led_count = 128
brightness = 80
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFile), []byte(raw), 0o600))

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", cfg.ExpectedTimezone())
	assert.Equal(t, ProbeBackendDBus, cfg.ProbeBackend())
	assert.Equal(t, 2*time.Minute, cfg.NTPCheckInterval())
	assert.Equal(t, 128, cfg.LEDCount())
	assert.Equal(t, 80, cfg.Brightness())
	assert.True(t, cfg.DebugLogging())

	// Fields absent from the file keep their defaults.
	assert.Equal(t, 1*time.Second, cfg.RefreshInterval())
}

func TestInvalidIntervalFallsBack(t *testing.T) {
	dir := t.TempDir()
	raw := `config_schema = 1

[clock]
ntp_check_interval = "five minutes"
refresh_interval = "-3s"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFile), []byte(raw), 0o600))

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, DefaultNTPCheckInterval, cfg.NTPCheckInterval())
	assert.Equal(t, DefaultRefreshInterval, cfg.RefreshInterval())
}

func TestSchemaMismatchRejected(t *testing.T) {
	dir := t.TempDir()
	raw := "config_schema = 99\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFile), []byte(raw), 0o600))

	_, err := NewConfig(dir, BaseDefaults)
	require.Error(t, err)
}

func TestMalformedColorFallsBack(t *testing.T) {
	dir := t.TempDir()
	raw := `config_schema = 1

[panel]
color = [500]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFile), []byte(raw), 0o600))

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	r, g, b := cfg.PanelColor()
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(255), g)
	assert.Equal(t, uint8(100), b)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	cfg.SetDebugLogging(true)
	require.NoError(t, cfg.Save())

	reloaded, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)
	assert.True(t, reloaded.DebugLogging())
}
