// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-gameid.
//
// go-gameid is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-gameid is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-gameid.  If not, see <https://www.gnu.org/licenses/>.

package byteio

import "errors"

var (
	// ErrOutOfBounds indicates a read or seek fell outside the stream.
	ErrOutOfBounds = errors.New("byteio: offset out of bounds")

	// ErrRecursionLimit indicates a null-terminated string scan exceeded
	// MaxStringLength without finding a NUL byte.
	ErrRecursionLimit = errors.New("byteio: string scan exceeded maximum length")

	// ErrClosed indicates an operation on a closed file stream.
	ErrClosed = errors.New("byteio: stream closed")
)
