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

	"github.com/spf13/afero"

	"github.com/Zatarita/SeK/zlibx"
)

// Decoder provides random-access reads over one chunked container stream,
// decompressing chunks lazily and caching them for the decoder's
// lifetime (no eviction: a populated chunk stays resident for as long as
// the decoder is open).
type Decoder struct {
	file    afero.File
	variant Variant
	p       params

	// noHeader is set when the caller already knows the source carries
	// no chunk table at all and should be read as a flat byte stream.
	noHeader bool
	fileSize int64

	// uncompressed marks chunks as raw passthrough rather than
	// zlib-compressed. Set from H2A's embedded flag word at
	// construction, and temporarily forced by Get's fallback retry.
	uncompressed bool

	offsets    []int64 // H1A/H2A: len == numChunks+1 (sentinel = fileSize); H2AM: len == numChunks
	sizes      []int64 // H2AM only: compressed size per chunk
	blamPrefix []byte  // H2AM only: 4096-byte opaque prefix

	cache  map[int][]byte
	closed bool
}

// Open parses variant's chunk table from path and returns a ready
// Decoder. If uncompressedHint is true, header parsing is skipped
// entirely and the file is treated as a raw, unchunked byte stream —
// Get then reads directly from the file at the requested offset.
func Open(fs afero.Fs, path string, variant Variant, uncompressedHint bool) (*Decoder, error) {
	p, err := variant.params()
	if err != nil {
		return nil, err
	}

	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}

	d := &Decoder{
		file:     file,
		variant:  variant,
		p:        p,
		fileSize: info.Size(),
		cache:    make(map[int][]byte),
	}

	if uncompressedHint {
		d.noHeader = true
		d.uncompressed = true
		return d, nil
	}

	if err := d.readHeader(); err != nil {
		_ = file.Close()
		return nil, err
	}
	return d, nil
}

func (d *Decoder) readAt(offset, n int64) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := d.file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	return buf[:read], nil
}

func (d *Decoder) readHeader() error {
	switch d.variant {
	case H1A:
		return d.readHeaderH1A()
	case H2A:
		return d.readHeaderH2A()
	case H2AM:
		return d.readHeaderH2AM()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownVariant, int(d.variant))
	}
}

func (d *Decoder) readHeaderH1A() error {
	head, err := d.readAt(0, 4)
	if err != nil {
		return err
	}
	count := int(binary.LittleEndian.Uint32(head))

	table, err := d.readAt(4, int64(count)*4)
	if err != nil {
		return err
	}
	d.offsets = make([]int64, count+1)
	for i := 0; i < count; i++ {
		d.offsets[i] = int64(binary.LittleEndian.Uint32(table[i*4 : i*4+4]))
	}
	d.offsets[count] = d.fileSize
	return nil
}

func (d *Decoder) readHeaderH2A() error {
	head, err := d.readAt(0, 8)
	if err != nil {
		return err
	}
	count := int(binary.LittleEndian.Uint32(head[0:4]))
	flags := binary.LittleEndian.Uint32(head[4:8])
	if flags&h2aFlagUncompressed != 0 {
		d.uncompressed = true
	}

	table, err := d.readAt(8, int64(count)*8)
	if err != nil {
		return err
	}
	d.offsets = make([]int64, count+1)
	for i := 0; i < count; i++ {
		d.offsets[i] = int64(binary.LittleEndian.Uint64(table[i*8 : i*8+8]))
	}
	d.offsets[count] = d.fileSize
	return nil
}

func (d *Decoder) readHeaderH2AM() error {
	prefix, err := d.readAt(0, blamPrefixSize)
	if err != nil {
		return err
	}
	d.blamPrefix = prefix

	pos := int64(blamPrefixSize)
	for i := 0; i < h2amMaxOffsets; i++ {
		pair, err := d.readAt(pos, 8)
		if err != nil {
			return err
		}
		if len(pair) < 8 {
			break
		}
		size := binary.LittleEndian.Uint32(pair[0:4])
		if size == 0 {
			break
		}
		offset := binary.LittleEndian.Uint32(pair[4:8])
		d.sizes = append(d.sizes, int64(size))
		d.offsets = append(d.offsets, int64(offset))
		pos += 8
	}
	return nil
}

// NumChunks returns the number of chunks in the table.
func (d *Decoder) NumChunks() int {
	if d.variant == H2AM {
		return len(d.sizes)
	}
	return len(d.offsets) - 1
}

// ChunkSize returns the variant's fixed chunk size.
func (d *Decoder) ChunkSize() int64 { return d.p.ChunkSize }

// Size returns the logical (uncompressed) stream length: chunk_count *
// chunk_size, minus the unused tail of the last chunk, plus the
// blam-prefix length for H2AM.
func (d *Decoder) Size() (int64, error) {
	if d.noHeader {
		return d.fileSize, nil
	}
	n := d.NumChunks()
	if n == 0 {
		if d.variant == H2AM {
			return blamPrefixSize, nil
		}
		return 0, nil
	}
	if err := d.Decompress(n - 1); err != nil {
		return 0, err
	}
	total := int64(n-1)*d.p.ChunkSize + int64(len(d.cache[n-1]))
	if d.variant == H2AM {
		total += blamPrefixSize
	}
	return total, nil
}

// Decompress populates the cache for chunk i if it is not already
// resident. Idempotent: a second call for an already-cached chunk is a
// no-op.
func (d *Decoder) Decompress(i int) error {
	if d.closed {
		return ErrClosed
	}
	if _, ok := d.cache[i]; ok {
		return nil
	}
	if i < 0 || i >= d.NumChunks() {
		return fmt.Errorf("%w: chunk %d", ErrBounds, i)
	}

	var start, compLen int64
	switch d.variant {
	case H1A:
		start = d.offsets[i]
		compLen = d.offsets[i+1] - start - 4
		if !d.uncompressed {
			start += 4
		}
	case H2A:
		start = d.offsets[i]
		compLen = d.offsets[i+1] - start
	case H2AM:
		start = d.offsets[i]
		compLen = d.sizes[i]
	}

	if d.uncompressed {
		raw, err := d.readAt(start, d.p.ChunkSize)
		if err != nil {
			return err
		}
		d.cache[i] = raw
		return nil
	}

	compressed, err := d.readAt(start, compLen)
	if err != nil {
		return err
	}
	if !zlibx.ValidHeader(compressed) {
		return zlibx.ErrInvalidHeader
	}
	dst := make([]byte, d.p.ChunkSize)
	n, err := zlibx.Decompress(dst, compressed)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrChunkDecode, err)
	}
	if n < int(d.p.ChunkSize) && i < d.NumChunks()-1 {
		return fmt.Errorf("%w: chunk %d inflated to %d bytes", ErrChunkDecode, i, n)
	}
	d.cache[i] = dst[:n]
	return nil
}

// DecompressRange populates the cache for every chunk in [a, b).
func (d *Decoder) DecompressRange(a, b int) error {
	for i := a; i < b; i++ {
		if err := d.Decompress(i); err != nil {
			return err
		}
	}
	return nil
}

// DecompressAll populates the cache for every chunk in the stream.
func (d *Decoder) DecompressAll() error {
	return d.DecompressRange(0, d.NumChunks())
}

// Get returns size bytes of the logical (uncompressed) stream starting
// at offset. If decoding under the assumption the payload is compressed
// fails, Get retries once treating chunks as raw passthrough; if that
// also fails, it returns an empty slice rather than propagating the
// error, per the format's fallback contract.
func (d *Decoder) Get(offset, size int64) ([]byte, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if d.noHeader {
		return d.readAt(offset, size)
	}

	result, err := d.getChunked(offset, size, false)
	if err == nil {
		return result, nil
	}
	result, err = d.getChunked(offset, size, true)
	if err == nil {
		return result, nil
	}
	return []byte{}, nil
}

func (d *Decoder) getChunked(offset, size int64, forceUncompressed bool) ([]byte, error) {
	saved := d.uncompressed
	if forceUncompressed {
		d.uncompressed = true
		defer func() { d.uncompressed = saved }()
	}

	var prefixPart []byte
	remOffset, remSize := offset, size

	if d.variant == H2AM && offset < blamPrefixSize {
		end := offset + size
		if end > blamPrefixSize {
			end = blamPrefixSize
		}
		prefixPart = append([]byte{}, d.blamPrefix[offset:end]...)
		remSize = size - (end - offset)
		remOffset = 0
	} else if d.variant == H2AM {
		remOffset = offset - blamPrefixSize
	}

	if remSize <= 0 {
		return prefixPart, nil
	}

	chunkSize := d.p.ChunkSize
	numChunks := int64(d.NumChunks())
	start := remOffset / chunkSize
	end := (remOffset + remSize - 1) / chunkSize
	if start < 0 || end >= numChunks {
		return nil, fmt.Errorf("%w: offset %d size %d", ErrBounds, offset, size)
	}

	startRem := remOffset - start*chunkSize
	endRem := (remOffset + remSize) - end*chunkSize

	if err := d.DecompressRange(int(start), int(end+1)); err != nil {
		return nil, err
	}

	out := append([]byte{}, prefixPart...)
	for i := start; i <= end; i++ {
		chunk := d.cache[int(i)]
		switch {
		case i == start && i == end:
			out = append(out, chunk[startRem:min64(startRem+remSize, int64(len(chunk)))]...)
		case i == start:
			out = append(out, chunk[startRem:]...)
		case i == end:
			out = append(out, chunk[:min64(endRem, int64(len(chunk)))]...)
		default:
			out = append(out, chunk...)
		}
	}
	return out, nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// ReaderAt exposes the decoder's logical stream as an io.ReaderAt, for
// callers (entry codecs, archive.Engine) that want to layer a
// byteio.Reader or similar over a chunked payload without threading
// Get calls through themselves.
func (d *Decoder) ReaderAt() io.ReaderAt { return decoderReaderAt{d} }

type decoderReaderAt struct{ d *Decoder }

func (r decoderReaderAt) ReadAt(p []byte, off int64) (int, error) {
	data, err := r.d.Get(off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	n := copy(p, data)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close releases the underlying file. Idempotent.
func (d *Decoder) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.file.Close() //nolint:wrapcheck // Close error passthrough is intentional
}
