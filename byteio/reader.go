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

import "bytes"

// Reader wraps a contiguous byte buffer and a current position, offering
// typed reads of fixed-width primitives and strings. It never returns an
// error for an out-of-range read; reads are clamped to the buffer end and
// short reads return zero/empty values, matching the source's "set a
// neutral value on failure" contract (see SPEC_FULL.md's error handling
// section) rather than the sticky-exception style used by the file
// streams.
type Reader struct {
	buf   []byte
	pos   int
	order Order
}

// NewReader creates a Reader over buf using the given declared order.
func NewReader(buf []byte, order Order) *Reader {
	return &Reader{buf: buf, order: order}
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int { return len(r.buf) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.pos >= len(r.buf) {
		return 0
	}
	return len(r.buf) - r.pos
}

// Tell returns the current read position.
func (r *Reader) Tell() int64 { return int64(r.pos) }

// Seek sets the current read position, clamped to [0, Len()].
func (r *Reader) Seek(pos int64) {
	switch {
	case pos < 0:
		r.pos = 0
	case pos > int64(len(r.buf)):
		r.pos = len(r.buf)
	default:
		r.pos = int(pos)
	}
}

// Pad advances the read position by n bytes, clamped to the buffer end.
func (r *Reader) Pad(n int) { r.Seek(r.Tell() + int64(n)) }

// ReadRaw returns the next n bytes, clamped to the buffer end; a short
// read (fewer than n bytes available) returns whatever remains.
func (r *Reader) ReadRaw(n int) []byte {
	if n < 0 {
		return nil
	}
	end := r.pos + n
	if end > len(r.buf) {
		end = len(r.buf)
	}
	out := r.buf[r.pos:end]
	r.pos = end
	return out
}

// PeekRaw is ReadRaw without advancing the position.
func (r *Reader) PeekRaw(n int) []byte {
	saved := r.pos
	out := r.ReadRaw(n)
	r.pos = saved
	return out
}

func (r *Reader) readFixed(n int) []byte {
	b := r.ReadRaw(n)
	if len(b) < n {
		full := make([]byte, n)
		copy(full, b)
		return full
	}
	return b
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() uint8 {
	b := r.readFixed(1)
	return b[0]
}

// ReadUint16 reads a 16-bit primitive in the stream's declared order.
func (r *Reader) ReadUint16() uint16 {
	return r.order.binary().Uint16(r.readFixed(2))
}

// ReadUint32 reads a 32-bit primitive in the stream's declared order.
func (r *Reader) ReadUint32() uint32 {
	return r.order.binary().Uint32(r.readFixed(4))
}

// ReadUint64 reads a 64-bit primitive in the stream's declared order.
func (r *Reader) ReadUint64() uint64 {
	return r.order.binary().Uint64(r.readFixed(8))
}

// ReadInt32 reads a signed 32-bit primitive.
func (r *Reader) ReadInt32() int32 { return int32(r.ReadUint32()) } //nolint:gosec // explicit reinterpret, not overflow

// PeekUint32 reads a 32-bit primitive without advancing the position.
func (r *Reader) PeekUint32() uint32 {
	saved := r.pos
	v := r.ReadUint32()
	r.pos = saved
	return v
}

// PeekUint16 reads a 16-bit primitive without advancing the position.
func (r *Reader) PeekUint16() uint16 {
	saved := r.pos
	v := r.ReadUint16()
	r.pos = saved
	return v
}

// ReadString reads n raw bytes and returns them as a string verbatim
// (copying the source's fixed-length string read, which copies L bytes
// with no NUL handling of its own).
func (r *Reader) ReadString(n int) string {
	return string(r.readFixed(n))
}

// ReadFixedCString reads n raw bytes and trims everything from the first
// NUL onward, the layout used by fixed-width name fields (e.g. the
// bitmap-metadata entry's 0x100-byte name).
func (r *Reader) ReadFixedCString(n int) string {
	b := r.readFixed(n)
	if idx := bytes.IndexByte(b, 0); idx >= 0 {
		b = b[:idx]
	}
	return string(b)
}

// ReadCString scans forward for a NUL terminator and returns the bytes up
// to but not including it, without a declared length. A missing NUL
// within MaxStringLength bytes of the buffer end is a recursion-limit
// error.
func (r *Reader) ReadCString() (string, error) {
	start := r.pos
	limit := len(r.buf)
	if limit-start > MaxStringLength {
		limit = start + MaxStringLength
	}
	idx := bytes.IndexByte(r.buf[start:limit], 0)
	if idx < 0 {
		r.pos = limit
		return "", ErrRecursionLimit
	}
	r.pos = start + idx + 1
	return string(r.buf[start : start+idx]), nil
}
