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

// WordsForTime maps a wall-clock time to the words lit on the face. Pure
// bucket lookup: minutes round to the nearest five-minute phrase (a ±2
// minute window around each), and from "half" onward the phrase names the
// next hour. Between :58 and :02 only the bare hour shows.
func WordsForTime(hour, minute int) []Word {
	var words []Word

	switch {
	case minute >= 3 && minute <= 7:
		words = append(words, WordVijf, WordOver)
	case minute >= 8 && minute <= 12:
		words = append(words, WordTien, WordOver)
	case minute >= 13 && minute <= 17:
		words = append(words, WordKwart, WordOver)
	case minute >= 18 && minute <= 22:
		words = append(words, WordTwintig, WordOver)
	case minute >= 23 && minute <= 27:
		words = append(words, WordTwintig, WordVijf, WordOver)
	case minute >= 28 && minute <= 32:
		words = append(words, WordHalf, WordOver)
	case minute >= 33 && minute <= 37:
		words = append(words, WordTwintig, WordVijf, WordVoor)
	case minute >= 38 && minute <= 42:
		words = append(words, WordTwintig, WordVoor)
	case minute >= 43 && minute <= 47:
		words = append(words, WordKwart, WordVoor)
	case minute >= 48 && minute <= 52:
		words = append(words, WordTien, WordVoor)
	case minute >= 53 && minute <= 57:
		words = append(words, WordVijf, WordVoor)
	}

	if minute > 32 {
		hour++
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}

	return append(words, HourWord(hour))
}
