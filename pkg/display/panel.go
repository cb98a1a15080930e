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

import "github.com/WoordklokProject/woordklok-core/pkg/helpers/syncutil"

// Color is one LED's RGB value.
type Color struct {
	R, G, B uint8
}

// Panel is the boundary to the LED hardware. Implementations buffer pixel
// writes until Show pushes the frame to the strip.
type Panel interface {
	SetPixel(i int, c Color)
	Clear()
	Show() error
	Count() int
}

// NullPanel discards all writes. Used when no hardware driver is wired,
// so the rest of the system behaves identically with or without LEDs.
type NullPanel struct {
	count int
}

// NewNullPanel creates a NullPanel reporting the given pixel count.
func NewNullPanel(count int) *NullPanel {
	return &NullPanel{count: count}
}

func (*NullPanel) SetPixel(_ int, _ Color) {}

func (*NullPanel) Clear() {}

func (*NullPanel) Show() error { return nil }

func (p *NullPanel) Count() int { return p.count }

// MemoryPanel keeps the frame in memory. Used by tests and diagnostic
// tooling to inspect what would be lit. Safe for concurrent use so it can
// be inspected while a render loop is writing to it.
type MemoryPanel struct {
	pixels []Color
	shown  []Color
	shows  int
	mu     syncutil.Mutex
}

// NewMemoryPanel creates a MemoryPanel with the given pixel count.
func NewMemoryPanel(count int) *MemoryPanel {
	return &MemoryPanel{
		pixels: make([]Color, count),
		shown:  make([]Color, count),
	}
}

func (p *MemoryPanel) SetPixel(i int, c Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i >= 0 && i < len(p.pixels) {
		p.pixels[i] = c
	}
}

func (p *MemoryPanel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.pixels {
		p.pixels[i] = Color{}
	}
}

func (p *MemoryPanel) Show() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	copy(p.shown, p.pixels)
	p.shows++
	return nil
}

func (p *MemoryPanel) Count() int { return len(p.pixels) }

// Shows returns how many frames have been pushed.
func (p *MemoryPanel) Shows() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shows
}

// Lit returns the indices lit in the last shown frame.
func (p *MemoryPanel) Lit() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	var lit []int
	for i, c := range p.shown {
		if c != (Color{}) {
			lit = append(lit, i)
		}
	}
	return lit
}
