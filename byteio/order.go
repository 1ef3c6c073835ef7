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

// Package byteio provides endianness-aware reading and writing of
// primitives and strings over an in-memory buffer and over a seekable
// file, replacing the source's placement-new/reinterpret-cast pattern
// with explicit sized reads and an unconditional byte-reverse when the
// declared stream order differs from the native one.
package byteio

import "encoding/binary"

// Order selects the byte order a stream declares for its primitives.
// Every archive format in this module is little-endian, but the byte
// codec itself stays order-agnostic the way the original EndianStream
// layer does, so a variant that declares big-endian fields is just a
// different Order value rather than a separate code path.
type Order int

const (
	// LittleEndian reads/writes primitives least-significant-byte-first.
	LittleEndian Order = iota
	// BigEndian reads/writes primitives most-significant-byte-first.
	BigEndian
)

func (o Order) binary() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// MaxStringLength caps a null-terminated string scan, matching the
// source's MAXIMUM_STRING_LENGTH guard against a runaway read.
const MaxStringLength = 0xFFFFFFFF
