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

package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererLightsWordPixels(t *testing.T) {
	t.Parallel()

	panel := NewMemoryPanel(64)
	renderer := NewRenderer(panel, Color{R: 255, G: 255, B: 100})

	// 10:15 lights kwart, over and the hour word for ten.
	err := renderer.Render(time.Date(2026, 8, 25, 10, 15, 0, 0, time.UTC))
	require.NoError(t, err)

	want := map[int]bool{}
	for _, word := range []Word{WordKwart, WordOver, HourWord(10)} {
		for _, px := range word.Pixels {
			want[px] = true
		}
	}

	lit := panel.Lit()
	assert.Len(t, lit, len(want))
	for _, px := range lit {
		assert.True(t, want[px], "unexpected pixel %d lit", px)
	}
}

func TestRendererClearsPreviousFrame(t *testing.T) {
	t.Parallel()

	panel := NewMemoryPanel(64)
	renderer := NewRenderer(panel, Color{R: 255})

	require.NoError(t, renderer.Render(time.Date(2026, 8, 25, 10, 25, 0, 0, time.UTC)))
	require.NoError(t, renderer.Render(time.Date(2026, 8, 25, 11, 0, 0, 0, time.UTC)))

	// Only the bare hour word remains.
	assert.ElementsMatch(t, HourWord(11).Pixels, panel.Lit())
	assert.Equal(t, 2, panel.Shows())
}

func TestRendererBlank(t *testing.T) {
	t.Parallel()

	panel := NewMemoryPanel(64)
	renderer := NewRenderer(panel, Color{R: 255})

	require.NoError(t, renderer.Render(time.Date(2026, 8, 25, 10, 15, 0, 0, time.UTC)))
	require.NoError(t, renderer.Blank())
	assert.Empty(t, panel.Lit())
}

func TestRendererSkipsPixelsBeyondPanel(t *testing.T) {
	t.Parallel()

	// A short strip must never index out of range.
	panel := NewMemoryPanel(16)
	renderer := NewRenderer(panel, Color{R: 255})

	require.NotPanics(t, func() {
		require.NoError(t, renderer.Render(time.Date(2026, 8, 25, 10, 15, 0, 0, time.UTC)))
	})
}
