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

// Package display maps times to word patterns on the 8x8 Dutch word-clock
// face and renders them onto a Panel. The time-to-words lookup is pure and
// stateless; all hardware concerns live behind the Panel interface.
package display

// Word is one displayable word on the clock face: its name and the LED
// indices that spell it.
type Word struct {
	Name   string
	Pixels []int
}

// Minute and connector words. Pixel indices follow the physical wiring of
// the 64-LED face, which snakes row by row.
var (
	WordVijf    = Word{Name: "vijf", Pixels: []int{16, 17, 18, 19}}
	WordTien    = Word{Name: "tien", Pixels: []int{1, 3, 4}}
	WordKwart   = Word{Name: "kwart", Pixels: []int{8, 9, 10, 11, 12, 13, 14}}
	WordTwintig = Word{Name: "twintig", Pixels: []int{1, 2, 3, 4, 5, 6}}
	WordHalf    = Word{Name: "half", Pixels: []int{20, 21, 22, 23}}
	WordOver    = Word{Name: "over", Pixels: []int{25, 26, 27, 28}}
	WordVoor    = Word{Name: "voor", Pixels: []int{28, 29}}
)

// hourWords is indexed by display hour 1..12.
var hourWords = [13]Word{
	1:  {Name: "een", Pixels: []int{57, 60, 63}},
	2:  {Name: "twee", Pixels: []int{48, 49, 57}},
	3:  {Name: "drie", Pixels: []int{43, 44, 45, 46, 47}},
	4:  {Name: "vier", Pixels: []int{56, 57, 58, 59}},
	5:  {Name: "vijf", Pixels: []int{32, 33, 34, 35}},
	6:  {Name: "zes", Pixels: []int{40, 41, 42}},
	7:  {Name: "zeven", Pixels: []int{40, 52, 53, 54, 55}},
	8:  {Name: "acht", Pixels: []int{35, 36, 37, 38, 39}},
	9:  {Name: "negen", Pixels: []int{60, 61, 62, 63}},
	10: {Name: "tien", Pixels: []int{39, 47, 55}},
	11: {Name: "elf", Pixels: []int{50, 51, 52, 53, 54, 55}},
	12: {Name: "twaalf", Pixels: []int{48, 49, 50, 51, 53, 54}},
}

// HourWord returns the word for a display hour (1..12).
func HourWord(hour int) Word {
	return hourWords[hour]
}
