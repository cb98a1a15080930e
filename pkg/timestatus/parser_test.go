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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timedatectlOld = `               Local time: Sun 2026-03-29 03:05:12 CEST
           Universal time: Sun 2026-03-29 01:05:12 UTC
                 RTC time: n/a
                 Time zone: Europe/Amsterdam (CEST, +0200)
     Network time on: yes
NTP synchronized: yes
 RTC in local TZ: no`

const timedatectlNew = `               Local time: Sun 2026-03-29 03:05:12 CEST
           Universal time: Sun 2026-03-29 01:05:12 UTC
                 Time zone: Europe/Amsterdam (CEST, +0200)
 System clock synchronized: no
               NTP service: active
           RTC in local TZ: no`

func TestValueAfterLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		output  string
		label   string
		want    string
		wantErr bool
	}{
		{
			name:   "timezone with leading padding",
			output: timedatectlOld,
			label:  labelTimezone,
			want:   "Europe/Amsterdam (CEST, +0200)",
		},
		{
			name:   "single line no padding",
			output: "Time zone: UTC",
			label:  labelTimezone,
			want:   "UTC",
		},
		{
			name:    "label absent",
			output:  "Local time: Sun 2026-03-29 03:05:12 CEST",
			label:   labelTimezone,
			wantErr: true,
		},
		{
			name:    "empty output",
			output:  "",
			label:   labelTimezone,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := valueAfterLabel(tt.output, tt.label)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrLabelNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSyncFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		output  string
		want    bool
		wantErr error
	}{
		{name: "old label yes", output: timedatectlOld, want: true},
		{name: "new label no", output: timedatectlNew, want: false},
		{name: "true value", output: "NTP synchronized: true", want: true},
		{name: "mixed case", output: "NTP synchronized: Yes", want: true},
		{name: "false value", output: "System clock synchronized: false", want: false},
		{name: "garbage value", output: "NTP synchronized: maybe", wantErr: ErrUnparseableValue},
		{name: "no label at all", output: "Local time: now", wantErr: ErrLabelNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseSyncFlag(tt.output)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProperty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		want   string
		wantOK bool
	}{
		{
			name:   "timestamp present",
			output: "ActiveEnterTimestamp=Tue 2026-08-25 10:00:00 UTC\n",
			want:   "Tue 2026-08-25 10:00:00 UTC",
			wantOK: true,
		},
		{name: "empty value", output: "ActiveEnterTimestamp=", wantOK: false},
		{name: "not applicable", output: "ActiveEnterTimestamp=n/a", wantOK: false},
		{name: "no separator", output: "garbage", wantOK: false},
		{name: "empty output", output: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseProperty(tt.output)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
