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

package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/spf13/afero"

	"github.com/Zatarita/SeK/zlibx"
)

// Flags configures Encoder.Compress. The zero value is NORMAL.
type Flags uint32

const (
	// Normal compresses at the default zlib level with a fixed-size
	// (DefaultHeaderSize) header reservation.
	Normal Flags = 0
	// MaxCompression requests zlib.BestCompression instead of the
	// default level.
	MaxCompression Flags = 1
	// MinimalHeader sizes the header exactly to the chunk table it
	// holds, instead of reserving DefaultHeaderSize.
	MinimalHeader Flags = 2
	// Uncompressed is H2A-only: it records the passthrough flag bit in
	// the embedded header flag word. Per spec.md §4.D it does not
	// suppress compression of the chunk payloads themselves — a
	// faithfully reproduced quirk of the original encoder, not a bug
	// fixed here.
	Uncompressed Flags = 4
	// MinimalFilesize combines MinimalHeader and MaxCompression.
	MinimalFilesize = MinimalHeader | MaxCompression
)

// defaultFlags is the constructor default: MinimalHeader set, matching
// spec.md §4.D's "Default at construction: MINIMAL_HEADER set."
const defaultFlags = MinimalHeader

// Encoder compresses a flat source stream into one of the three
// chunked container variants.
type Encoder struct {
	flags Flags
}

// NewEncoder returns an Encoder with the format's default flags
// (MinimalHeader set).
func NewEncoder() *Encoder { return &Encoder{flags: defaultFlags} }

// NewEncoderWithFlags returns an Encoder configured with an explicit
// flag set, overriding the constructor default.
func NewEncoderWithFlags(flags Flags) *Encoder { return &Encoder{flags: flags} }

func (e *Encoder) zlibLevel() int {
	if e.flags&MaxCompression != 0 {
		return zlib.BestCompression
	}
	return zlib.DefaultCompression
}

// Compress reads srcPath in full and writes variant's chunked container
// to dstPath on fs.
func (e *Encoder) Compress(fs afero.Fs, srcPath, dstPath string, variant Variant) error {
	p, err := variant.params()
	if err != nil {
		return err
	}

	src, err := fs.Open(srcPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer func() { _ = src.Close() }()
	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	srcSize := info.Size()

	var blamPrefix []byte
	payloadSize := srcSize
	if variant == H2AM {
		blamPrefix = make([]byte, blamPrefixSize)
		n, _ := src.ReadAt(blamPrefix, 0)
		if n < blamPrefixSize {
			blamPrefix = append(blamPrefix[:n], make([]byte, blamPrefixSize-n)...)
		}
		payloadSize = srcSize - blamPrefixSize
		if payloadSize < 0 {
			payloadSize = 0
		}
	}

	chunkCount := int((payloadSize + p.ChunkSize - 1) / p.ChunkSize)

	dst, err := fs.Create(dstPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer func() { _ = dst.Close() }()

	headerSize := e.headerSize(variant, p, chunkCount)
	pos := headerSize

	offsets := make([]int64, chunkCount)
	sizes := make([]int64, chunkCount) // H2AM only

	srcBase := int64(0)
	if variant == H2AM {
		srcBase = blamPrefixSize
	}

	for i := 0; i < chunkCount; i++ {
		raw := make([]byte, p.ChunkSize)
		n, err := src.ReadAt(raw, srcBase+int64(i)*p.ChunkSize)
		if err != nil && err != io.EOF {
			return fmt.Errorf("%w: %w", ErrFileAccess, err)
		}
		raw = raw[:n]

		compressed, err := zlibx.Compress(raw, e.zlibLevel())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrChunkDecode, err)
		}

		offsets[i] = pos

		switch variant {
		case H1A:
			lenBuf := make([]byte, 4)
			binary.LittleEndian.PutUint32(lenBuf, uint32(n))
			if _, err := dst.WriteAt(lenBuf, pos); err != nil {
				return fmt.Errorf("%w: %w", ErrFileAccess, err)
			}
			pos += 4
			if _, err := dst.WriteAt(compressed, pos); err != nil {
				return fmt.Errorf("%w: %w", ErrFileAccess, err)
			}
			pos += int64(len(compressed))
		case H2A:
			if _, err := dst.WriteAt(compressed, pos); err != nil {
				return fmt.Errorf("%w: %w", ErrFileAccess, err)
			}
			pos += int64(len(compressed))
		case H2AM:
			padded := len(compressed)
			if rem := padded % 128; rem != 0 {
				padded += 128 - rem
			}
			block := make([]byte, padded)
			copy(block, compressed)
			if _, err := dst.WriteAt(block, pos); err != nil {
				return fmt.Errorf("%w: %w", ErrFileAccess, err)
			}
			sizes[i] = int64(padded)
			pos += int64(padded)
		}
	}

	if err := e.writeHeader(dst, variant, blamPrefix, offsets, sizes); err != nil {
		return err
	}
	return nil
}

func (e *Encoder) headerSize(variant Variant, p params, chunkCount int) int64 {
	minimal := e.flags&MinimalHeader != 0
	switch variant {
	case H1A:
		if minimal {
			return 4 + int64(chunkCount)*4
		}
		return p.DefaultHeaderSize
	case H2A:
		if minimal {
			return 8 + int64(chunkCount)*8
		}
		return p.DefaultHeaderSize
	case H2AM:
		if minimal {
			return blamPrefixSize + int64(chunkCount+1)*8
		}
		return p.DefaultHeaderSize
	default:
		return p.DefaultHeaderSize
	}
}

func (e *Encoder) writeHeader(dst afero.File, variant Variant, blamPrefix []byte, offsets, sizes []int64) error {
	switch variant {
	case H1A:
		count := len(offsets)
		head := make([]byte, 4+count*4)
		binary.LittleEndian.PutUint32(head[:4], uint32(count))
		for i, off := range offsets {
			binary.LittleEndian.PutUint32(head[4+i*4:8+i*4], uint32(off))
		}
		_, err := dst.WriteAt(head, 0)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFileAccess, err)
		}
	case H2A:
		count := len(offsets)
		head := make([]byte, 8+count*8)
		binary.LittleEndian.PutUint32(head[:4], uint32(count))
		flags := uint32(0)
		if e.flags&Uncompressed != 0 {
			flags |= h2aFlagUncompressed
		}
		binary.LittleEndian.PutUint32(head[4:8], flags)
		for i, off := range offsets {
			binary.LittleEndian.PutUint64(head[8+i*8:16+i*8], uint64(off))
		}
		_, err := dst.WriteAt(head, 0)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFileAccess, err)
		}
	case H2AM:
		if _, err := dst.WriteAt(blamPrefix, 0); err != nil {
			return fmt.Errorf("%w: %w", ErrFileAccess, err)
		}
		count := len(offsets)
		table := make([]byte, (count+1)*8) // +1 for the zero-size terminator pair
		for i := range offsets {
			binary.LittleEndian.PutUint32(table[i*8:i*8+4], uint32(sizes[i]))
			binary.LittleEndian.PutUint32(table[i*8+4:i*8+8], uint32(offsets[i]))
		}
		if _, err := dst.WriteAt(table, blamPrefixSize); err != nil {
			return fmt.Errorf("%w: %w", ErrFileAccess, err)
		}
	}
	return nil
}
