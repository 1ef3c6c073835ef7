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

// Package container implements the three chunked-zlib container variants
// (H1A, H2A, H2AM) this archive format wraps every entry payload in: a
// fixed-size chunk table maps logical byte ranges onto independently
// zlib-compressed chunks, giving random-access reads without inflating
// the whole stream up front. The decoder is a chunk-indexed,
// lazily-decompressed-and-cached stream addressed by plain logical byte
// offsets, since this format has no track/sector concept.
package container

import "fmt"

// Variant selects one of the three on-disk chunk-table layouts.
type Variant int

const (
	// H1A uses 32-bit chunk offsets and a 4-byte uncompressed-length
	// prefix before each chunk's compressed bytes.
	H1A Variant = iota
	// H2A uses 64-bit chunk offsets and an embedded 32-bit flag word.
	H2A
	// H2AM uses 32-bit (size, offset) pairs, a 4096-byte opaque prefix
	// blob, and 128-byte chunk alignment.
	H2AM
)

func (v Variant) String() string {
	switch v {
	case H1A:
		return "H1A"
	case H2A:
		return "H2A"
	case H2AM:
		return "H2AM"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// blamPrefixSize is the size of H2AM's opaque prefix blob, copied
// verbatim from the source's first 4096 bytes and excluded from chunking.
const blamPrefixSize = 4096

// h2amMaxOffsets bounds how many (size, offset) pairs the table can hold,
// matching the source's H2AM_MAX_OFFSETS constant.
const h2amMaxOffsets = 0x400

// h2aFlagUncompressed is the container-embedded flag bit (distinct from
// the Encoder's own Flags configuration bitfield) that marks an H2A
// stream's chunks as raw passthrough rather than zlib-compressed,
// matching spec.md §4.D's UNCOMPRESSED=0x04 and the original's
// `flags & Flag::UNCOMPRESSED`.
const h2aFlagUncompressed uint32 = 0x04

// params holds the per-variant geometry the decoder and encoder need.
type params struct {
	ChunkSize int64
	// OffsetWidth is the byte width of one chunk-table offset entry
	// (4 for H1A/H2AM, 8 for H2A).
	OffsetWidth int
	// DefaultHeaderSize is the fixed, non-minimal header reservation
	// spec.md's canonical data-model table lists for this variant.
	DefaultHeaderSize int64
}

func (v Variant) params() (params, error) {
	switch v {
	case H1A:
		return params{ChunkSize: 0x20000, OffsetWidth: 4, DefaultHeaderSize: 0x40000}, nil
	case H2A:
		return params{ChunkSize: 0x8000, OffsetWidth: 8, DefaultHeaderSize: 0x600000}, nil
	case H2AM:
		return params{ChunkSize: 0x40000, OffsetWidth: 4, DefaultHeaderSize: blamPrefixSize + 0x1000}, nil
	default:
		return params{}, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
}
