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

package timestatus

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog/log"
)

const (
	timedate1Service = "org.freedesktop.timedate1"
	timedate1Path    = "/org/freedesktop/timedate1"

	dbusPropertiesGet = "org.freedesktop.DBus.Properties.Get"

	systemd1Service = "org.freedesktop.systemd1"
	// Object path of systemd-timesyncd.service, with systemd's bus-name
	// escaping applied ("-" -> _2d, "." -> _2e).
	timesyncdUnitPath = "/org/freedesktop/systemd1/unit/systemd_2dtimesyncd_2eservice"
	systemd1UnitIface = "org.freedesktop.systemd1.Unit"
)

// DBusProbe queries time status from org.freedesktop.timedate1 on the
// system bus, the same service timedatectl fronts, without a subprocess.
// Each query opens a private bus connection and closes it before returning.
type DBusProbe struct{}

// NewDBusProbe creates a DBusProbe.
func NewDBusProbe() *DBusProbe {
	return &DBusProbe{}
}

// connect opens a private system bus connection. A fresh connection per
// query keeps the probe stateless and lets us close it without affecting
// any shared connection elsewhere in the process.
func (*DBusProbe) connect() (*dbus.Conn, error) {
	conn, err := dbus.SystemBusPrivate()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	if err := conn.Auth(nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("bus auth: %w", err)
	}
	if err := conn.Hello(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("bus hello: %w", err)
	}
	return conn, nil
}

func (p *DBusProbe) property(
	ctx context.Context, service string, path dbus.ObjectPath, iface, name string,
) (dbus.Variant, error) {
	conn, err := p.connect()
	if err != nil {
		return dbus.Variant{}, err
	}
	defer func() { _ = conn.Close() }()

	obj := conn.Object(service, path)
	call := obj.CallWithContext(ctx, dbusPropertiesGet, 0, iface, name)
	if call.Err != nil {
		return dbus.Variant{}, fmt.Errorf("get property %s: %w", name, call.Err)
	}

	var variant dbus.Variant
	if err := call.Store(&variant); err != nil {
		return dbus.Variant{}, fmt.Errorf("store property %s: %w", name, err)
	}
	return variant, nil
}

// Timezone returns the Timezone property of timedate1, e.g. "Europe/Amsterdam".
func (p *DBusProbe) Timezone(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, StatusTimeout)
	defer cancel()

	variant, err := p.property(ctx, timedate1Service, timedate1Path, timedate1Service, "Timezone")
	if err != nil {
		return "", probeErr("timezone via dbus", err)
	}
	tz, ok := variant.Value().(string)
	if !ok {
		return "", probeErr("timezone via dbus", ErrUnparseableValue)
	}
	return tz, nil
}

// NTPSynchronized returns the NTPSynchronized property of timedate1.
func (p *DBusProbe) NTPSynchronized(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, StatusTimeout)
	defer cancel()

	variant, err := p.property(ctx, timedate1Service, timedate1Path, timedate1Service, "NTPSynchronized")
	if err != nil {
		return false, probeErr("sync flag via dbus", err)
	}
	synced, ok := variant.Value().(bool)
	if !ok {
		return false, probeErr("sync flag via dbus", ErrUnparseableValue)
	}
	return synced, nil
}

// LastSyncTimestamp reads the ActiveEnterTimestamp of systemd-timesyncd.
// Best effort: any failure, or a unit that never activated, yields absence.
func (p *DBusProbe) LastSyncTimestamp(ctx context.Context) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, SyncTimestampTimeout)
	defer cancel()

	variant, err := p.property(ctx,
		systemd1Service, timesyncdUnitPath, systemd1UnitIface, "ActiveEnterTimestamp")
	if err != nil {
		log.Debug().Err(err).Msg("timestatus: last sync timestamp unavailable")
		return "", false
	}
	usec, ok := variant.Value().(uint64)
	if !ok || usec == 0 {
		return "", false
	}
	return time.UnixMicro(int64(usec)).Format("Mon 2006-01-02 15:04:05 MST"), true
}
