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
	"sync"
	"testing"

	"github.com/WoordklokProject/woordklok-core/pkg/config"
	"github.com/stretchr/testify/require"
)

// syncResult is one scripted NTPSynchronized answer.
type syncResult struct {
	err    error
	synced bool
}

// stubProbe returns scripted answers. Sync results are consumed in order
// and the final one repeats.
type stubProbe struct {
	tzErr    error
	tz       string
	lastSync string
	syncSeq  []syncResult
	mu       sync.Mutex
	calls    int
	hasSync  bool
}

func (p *stubProbe) Timezone(_ context.Context) (string, error) {
	if p.tzErr != nil {
		return "", p.tzErr
	}
	return p.tz, nil
}

func (p *stubProbe) NTPSynchronized(_ context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.calls
	p.calls++
	if i >= len(p.syncSeq) {
		i = len(p.syncSeq) - 1
	}
	res := p.syncSeq[i]
	return res.synced, res.err
}

func (p *stubProbe) LastSyncTimestamp(_ context.Context) (string, bool) {
	return p.lastSync, p.hasSync
}

func (p *stubProbe) syncCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// newTestConfig creates a config instance backed by a temp dir.
func newTestConfig(t *testing.T) *config.Instance {
	t.Helper()

	cfg, err := config.NewConfig(t.TempDir(), config.BaseDefaults)
	require.NoError(t, err)

	return cfg
}
