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
	"errors"
	"strings"
)

// Labels emitted by timedatectl. Older systemd prints "NTP synchronized:",
// newer versions renamed it to "System clock synchronized:"; both appear in
// the field. Matching is by substring within a line, same loose policy as
// the timezone check.
const (
	labelTimezone     = "Time zone:"
	labelNTPSync      = "NTP synchronized:"
	labelClockSync    = "System clock synchronized:"
	propertySeparator = "="
)

var (
	// ErrLabelNotFound means the expected label line was absent from the
	// command output.
	ErrLabelNotFound = errors.New("label not found in output")
	// ErrUnparseableValue means the label was present but its value could
	// not be interpreted.
	ErrUnparseableValue = errors.New("unparseable value")
)

// valueAfterLabel scans output line by line for the first line containing
// label, splits on the label, and returns the trimmed remainder.
func valueAfterLabel(output, label string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, label) {
			continue
		}
		_, after, _ := strings.Cut(line, label)
		return strings.TrimSpace(after), nil
	}
	return "", ErrLabelNotFound
}

// parseSyncFlag extracts the synchronization flag from timedatectl output,
// accepting either label variant. "yes" and "true" (any case) mean synced.
func parseSyncFlag(output string) (bool, error) {
	value, err := valueAfterLabel(output, labelNTPSync)
	if errors.Is(err, ErrLabelNotFound) {
		value, err = valueAfterLabel(output, labelClockSync)
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(value) {
	case "yes", "true":
		return true, nil
	case "no", "false":
		return false, nil
	default:
		return false, ErrUnparseableValue
	}
}

// parseProperty splits "key=value" output from systemctl show, returning
// the value. An absent separator or empty value reports failure.
func parseProperty(output string) (string, bool) {
	_, value, found := strings.Cut(strings.TrimSpace(output), propertySeparator)
	if !found {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" || value == "n/a" {
		return "", false
	}
	return value, true
}
