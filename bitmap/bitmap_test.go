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

package bitmap_test

import (
	"encoding/binary"
	"testing"

	"github.com/spf13/afero"

	"github.com/Zatarita/SeK/bitmap"
	"github.com/Zatarita/SeK/byteio"
)

// TestBitmapRecordRoundTrip reproduces spec.md's scenario E6.
func TestBitmapRecordRoundTrip(t *testing.T) {
	t.Parallel()

	entry := bitmap.New()
	entry.SetName("bitmap_01")
	entry.SetDimensions(256, 256, 1, 8, 1)
	entry.SetFormat(uint32(bitmap.FormatDXT5))
	entry.SetSize(0x4040)
	entry.SetOffset(0x290008)

	w := byteio.NewWriter(byteio.LittleEndian)
	entry.WriteHeader(w)
	raw := w.Bytes()

	if len(raw) != 0x148 {
		t.Fatalf("record length = %#x, want 0x148", len(raw))
	}

	wantAdjSize := uint32(0x4000)
	positions := []int{0x12C, 0x134, 0x140}
	for _, pos := range positions {
		got := binary.LittleEndian.Uint32(raw[pos : pos+4])
		if got != wantAdjSize {
			t.Errorf("adj_size at %#x = %#x, want %#x", pos, got, wantAdjSize)
		}
	}

	got := bitmap.New()
	got.ReadHeader(byteio.NewReader(raw, byteio.LittleEndian))

	if got.Name() != "bitmap_01" {
		t.Errorf("name = %q, want %q", got.Name(), "bitmap_01")
	}
	if got.Width() != 256 || got.Height() != 256 || got.Depth() != 1 {
		t.Errorf("dimensions = %dx%dx%d, want 256x256x1", got.Width(), got.Height(), got.Depth())
	}
	if got.MipmapCount() != 8 {
		t.Errorf("mipmap_count = %d, want 8", got.MipmapCount())
	}
	if got.FaceCount() != 1 {
		t.Errorf("face_count = %d, want 1", got.FaceCount())
	}
	if got.Format() != uint32(bitmap.FormatDXT5) {
		t.Errorf("format = %#x, want %#x", got.Format(), bitmap.FormatDXT5)
	}
	if got.Size() != 0x4040 {
		t.Errorf("size = %#x, want %#x", got.Size(), 0x4040)
	}
	if got.Offset() != 0x290008 {
		t.Errorf("offset = %#x, want %#x", got.Offset(), 0x290008)
	}
}

// TestArchiveFixedHeaderSize covers the bitmap-metadata archive's
// fixed-size (not computed) header region.
func TestArchiveFixedHeaderSize(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	arc := bitmap.Open(fs)

	if err := arc.New("one", uint32(bitmap.FormatDXT5), nil); err != nil {
		t.Fatalf("new: %v", err)
	}
	entry, ok := arc.Entry("one")
	if !ok {
		t.Fatalf("entry %q not found", "one")
	}
	entry.(*bitmap.Entry).SetDimensions(64, 64, 1, 1, 1)

	if err := arc.Save("/meta.imeta"); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := afero.ReadFile(fs, "/meta.imeta")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(raw) != 0x290008 {
		t.Fatalf("archive length = %#x, want 0x290008", len(raw))
	}
	if count := binary.LittleEndian.Uint64(raw[:8]); count != 1 {
		t.Errorf("child_count = %d, want 1", count)
	}
}
