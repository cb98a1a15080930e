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

	"github.com/WoordklokProject/woordklok-core/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

const (
	timedatectlBin = "timedatectl"
	systemctlBin   = "systemctl"
	timesyncdUnit  = "systemd-timesyncd"
)

// CommandProbe queries time status by running timedatectl. Each query owns
// its subprocess for the duration of the call and nothing longer.
type CommandProbe struct {
	executor command.Executor
}

// NewCommandProbe creates a CommandProbe. A nil executor defaults to real
// command execution.
func NewCommandProbe(executor command.Executor) *CommandProbe {
	if executor == nil {
		executor = &command.RealExecutor{}
	}
	return &CommandProbe{executor: executor}
}

func (p *CommandProbe) status(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, StatusTimeout)
	defer cancel()

	out, err := p.executor.Output(ctx, timedatectlBin)
	if err != nil {
		return "", probeErr("run timedatectl", err)
	}
	return string(out), nil
}

// Timezone returns the "Time zone:" value from timedatectl output.
func (p *CommandProbe) Timezone(ctx context.Context) (string, error) {
	output, err := p.status(ctx)
	if err != nil {
		return "", err
	}
	value, err := valueAfterLabel(output, labelTimezone)
	if err != nil {
		return "", probeErr("parse timezone", err)
	}
	return value, nil
}

// NTPSynchronized returns the synchronization flag from timedatectl output.
func (p *CommandProbe) NTPSynchronized(ctx context.Context) (bool, error) {
	output, err := p.status(ctx)
	if err != nil {
		return false, err
	}
	synced, err := parseSyncFlag(output)
	if err != nil {
		return false, probeErr("parse sync flag", err)
	}
	return synced, nil
}

// LastSyncTimestamp asks systemd when the timesync service last became
// active. Best effort: any failure yields absence, never an error.
func (p *CommandProbe) LastSyncTimestamp(ctx context.Context) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, SyncTimestampTimeout)
	defer cancel()

	out, err := p.executor.Output(ctx, systemctlBin,
		"show", timesyncdUnit, "--property=ActiveEnterTimestamp")
	if err != nil {
		log.Debug().Err(err).Msg("timestatus: last sync timestamp unavailable")
		return "", false
	}
	return parseProperty(string(out))
}
