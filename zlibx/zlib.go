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

// Package zlibx validates and wraps the zlib streams embedded in the
// chunk container's compressed payloads. Unlike chd's codec layer (which
// speaks raw deflate because CHD hunks carry no zlib header at all), this
// format's chunks are genuine zlib streams, so this package wraps
// klauspost/compress/zlib directly instead of compress/flate.
package zlibx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// validHeaders is the closed allowlist of 32 CMF/FLG byte pairs this
// format's encoder ever emits, read as a little-endian uint16 (FLG in
// the high byte, CMF in the low byte) regardless of the container's own
// declared byte order (the format mixes endianness here deliberately,
// per spec.md §4.B).
var validHeaders = map[uint16]bool{
	0x1D08: true, 0x5B08: true, 0x9908: true, 0xD708: true,
	0x1918: true, 0x5718: true, 0x9518: true, 0xD318: true,
	0x1528: true, 0x5328: true, 0x9128: true, 0xCF28: true,
	0x1138: true, 0xF438: true, 0x8D38: true, 0xCB38: true,
	0x0D48: true, 0x4B48: true, 0x8948: true, 0xC748: true,
	0x0958: true, 0x4758: true, 0x8558: true, 0xC358: true,
	0x0568: true, 0x4368: true, 0x8168: true, 0xDE68: true,
	0x0178: true, 0x5E78: true, 0x9C78: true, 0xDA78: true,
}

// ErrInvalidHeader indicates the leading two bytes of a chunk are not one
// of the 32 valid zlib CMF/FLG combinations this format allows.
var ErrInvalidHeader = fmt.Errorf("zlibx: zlib header not in allowlist")

// ErrDecompressFailed indicates the zlib reader could not be created or
// returned an error while inflating. A stream that inflates to fewer
// bytes than len(dst) is not an error; Decompress returns the count.
var ErrDecompressFailed = fmt.Errorf("zlibx: decompression failed")

// ValidHeader reports whether the leading two bytes of a chunk, read as
// a little-endian uint16 (CMF in the low byte, FLG in the high byte,
// matching the original's peek<uint16_t>() on a little-endian stream),
// are one of the format's 32 allowed zlib headers.
func ValidHeader(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	return validHeaders[binary.LittleEndian.Uint16(b[:2])]
}

// Decompress validates src's leading zlib header against the allowlist,
// then inflates it into dst, returning the number of bytes written. dst
// bounds the maximum output; a stream producing more is truncated,
// mirroring the source's caller-sized output buffer contract.
func Decompress(dst, src []byte) (int, error) {
	if !ValidHeader(src) {
		return 0, ErrInvalidHeader
	}

	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDecompressFailed, err)
	}
	defer func() { _ = zr.Close() }()

	n, err := io.ReadFull(zr, dst)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return n, fmt.Errorf("%w: %w", ErrDecompressFailed, err)
	}
	return n, nil
}

// Compress deflates src at the given zlib level (use zlib.BestCompression
// for the encoder's MAX_COMPRESSION flag, zlib.DefaultCompression
// otherwise).
func Compress(src []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("zlibx: create writer: %w", err)
	}
	if _, err := zw.Write(src); err != nil {
		return nil, fmt.Errorf("zlibx: write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlibx: close: %w", err)
	}
	return buf.Bytes(), nil
}
