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
	"fmt"
	"time"
)

// Renderer draws word frames for a given time onto a Panel in a fixed
// colour.
type Renderer struct {
	panel Panel
	color Color
}

// NewRenderer creates a Renderer over the panel.
func NewRenderer(panel Panel, color Color) *Renderer {
	return &Renderer{panel: panel, color: color}
}

// Render clears the panel, lights the words for t, and pushes the frame.
func (r *Renderer) Render(t time.Time) error {
	r.panel.Clear()

	count := r.panel.Count()
	for _, word := range WordsForTime(t.Hour(), t.Minute()) {
		for _, px := range word.Pixels {
			if px < count {
				r.panel.SetPixel(px, r.color)
			}
		}
	}

	if err := r.panel.Show(); err != nil {
		return fmt.Errorf("failed to push frame: %w", err)
	}
	return nil
}

// Blank clears the panel and pushes the empty frame, used at shutdown.
func (r *Renderer) Blank() error {
	r.panel.Clear()
	if err := r.panel.Show(); err != nil {
		return fmt.Errorf("failed to blank panel: %w", err)
	}
	return nil
}
