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

package imagepack

import (
	"errors"
	"fmt"

	"github.com/Zatarita/SeK/byteio"
)

// ErrTruncated indicates a payload is too short to hold a complete
// TextureEntry header and footer.
var ErrTruncated = errors.New("imagepack: texture entry payload truncated")

// textureHeaderSize is the fixed byte span before the variable-length
// pixel data: 0x10 pad + dimensions(12) + faceCount(4) + 0x6 pad +
// format(4) + 0x6 pad + mipmapCount(4) + 0x6 pad.
const textureHeaderSize = 0x3A

// textureFooterSize is the trailing padding/footer after the pixel data.
const textureFooterSize = 0x6

// TextureEntry is the nested pixel-payload record the original embeds
// inside every image-pack entry's raw bytes — distinct from (and nested
// one level deeper than) the bitmap.Entry metadata record that
// describes where to find it. Not named in spec.md's distillation;
// supplemented from
// original_source/libSaber/include/libSaber/definitions/texture_entry.h.
type TextureEntry struct {
	Width, Height, Depth uint32
	FaceCount            uint32
	MipmapCount          uint32
	Format               uint32
	PixelData            []byte
}

// ReadTextureEntry decodes data as a TextureEntry.
func ReadTextureEntry(data []byte) (*TextureEntry, error) {
	if len(data) < textureHeaderSize+textureFooterSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}

	r := byteio.NewReader(data, byteio.LittleEndian)
	r.Pad(0x10)

	e := &TextureEntry{}
	e.Width = r.ReadUint32()
	e.Height = r.ReadUint32()
	e.Depth = r.ReadUint32()
	e.FaceCount = r.ReadUint32()
	r.Pad(0x6)
	e.Format = r.ReadUint32()
	r.Pad(0x6)
	e.MipmapCount = r.ReadUint32()
	r.Pad(0x6)

	pixelLen := len(data) - int(r.Tell()) - textureFooterSize
	if pixelLen < 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}
	e.PixelData = r.ReadRaw(pixelLen)
	return e, nil
}

// WriteTextureEntry encodes e in the same layout ReadTextureEntry
// parses, padding the 0x10/0x6/0x6/0x6/0x6 gaps with zero bytes.
func WriteTextureEntry(e *TextureEntry) []byte {
	w := byteio.NewWriter(byteio.LittleEndian)
	w.Pad(0x10)
	w.WriteUint32(e.Width)
	w.WriteUint32(e.Height)
	w.WriteUint32(e.Depth)
	w.WriteUint32(e.FaceCount)
	w.Pad(0x6)
	w.WriteUint32(e.Format)
	w.Pad(0x6)
	w.WriteUint32(e.MipmapCount)
	w.Pad(0x6)
	w.WriteRaw(e.PixelData)
	w.Pad(textureFooterSize)
	return w.Bytes()
}
