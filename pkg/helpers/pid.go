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

package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/WoordklokProject/woordklok-core/pkg/config"
)

// WritePidFile records the current process PID in dir, for service
// managers and scripts that need to find the running daemon.
func WritePidFile(dir string) error {
	path := filepath.Join(dir, config.PidFile)
	pid := os.Getpid()
	err := os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o600)
	if err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// RemovePidFile deletes the PID file written by WritePidFile.
func RemovePidFile(dir string) error {
	err := os.Remove(filepath.Join(dir, config.PidFile))
	if err != nil {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// ReadPid returns the PID recorded in dir, or 0 when no PID file exists.
func ReadPid(dir string) (int, error) {
	path := filepath.Join(dir, config.PidFile)

	if _, err := os.Stat(path); err != nil {
		return 0, nil
	}

	//nolint:gosec // Safe: reads PID files for service management
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("error reading pid file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("error parsing pid: %w", err)
	}

	return pid, nil
}
