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

// Package archive implements the generic archive engine every entry-kind
// package (scenepack, bitmap, imagepack) wires into a concrete archive:
// a named collection of payload entries stored inside a chunk container,
// with a header table describing each entry. Where the original C++ is
// template-parameterized by {decoder, entry codec}, this package follows
// spec.md §9's design note and uses a capability interface (Entry) plus
// a small Config struct instead — Go has no template-instantiation
// analog, and a dispatched interface is the idiomatic equivalent.
package archive

import "github.com/Zatarita/SeK/byteio"

// Entry is the capability abstraction an archive's per-record codec
// implements: header_size, read_header, write_header, plus the
// name/offset/size/format accessors the engine needs to drive save's
// offset-assignment pass. Concrete implementations live in scenepack
// and bitmap (imagepack reuses bitmap's).
type Entry interface {
	Name() string
	SetName(name string)

	Format() uint32
	SetFormat(format uint32)

	// Offset is the entry's payload position in the uncompressed
	// archive stream. The engine assigns this during Save; codecs only
	// read and write it as a header field.
	Offset() int64
	SetOffset(offset int64)

	// Size is the payload length in bytes.
	Size() int64
	SetSize(size int64)

	// HeaderSize is this entry's on-disk header record length. For
	// scene-pack entries it depends on the name's length; for
	// bitmap-metadata entries it is always the fixed 0x148.
	HeaderSize() int64

	// ReadHeader/WriteHeader transfer the entry's header fields
	// to/from a byte-order-aware cursor. Neither ever returns an error:
	// like byteio.Reader/Writer, a truncated source yields zeroed
	// fields rather than propagating an I/O error.
	ReadHeader(r *byteio.Reader)
	WriteHeader(w *byteio.Writer)
}
