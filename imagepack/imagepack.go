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

// Package imagepack implements the image-pack archive kind: the same
// fixed bitmap.Entry record the bitmap-metadata archive uses, but paired
// with an actual payload section (the pixel bytes a bitmap-metadata
// entry only points at). Each entry's raw payload is itself a nested
// TextureEntry record — see texture_entry.go.
package imagepack

import (
	"github.com/spf13/afero"

	"github.com/Zatarita/SeK/archive"
	"github.com/Zatarita/SeK/bitmap"
	"github.com/Zatarita/SeK/container"
)

// headerSize is the fixed header-table region spec.md §6 documents for
// image-pack archives, matching bitmap-metadata's HEADER_SIZE constant.
const headerSize = 0x290008

// footerPad is the fixed total file size payload data is padded out to.
const footerPad = 0x200000

// ExtensionFor returns the fixed save_all suffix for image-pack payload
// entries, per spec.md §6.
func ExtensionFor(format uint32) string {
	return ".ipak_entry"
}

// Archive is an image-pack archive: the bitmap-metadata record reused
// verbatim, but with WritePayload enabled and a footer pad instead of
// bitmap-metadata's no-payload layout.
type Archive struct {
	*archive.Engine
}

// Open returns an empty image-pack Archive backed by fs.
func Open(fs afero.Fs) *Archive {
	cfg := archive.Config{
		Variant:         container.H1A,
		ChildCountWidth: 8,
		NewEntry:        func() archive.Entry { return bitmap.New() },
		FixedHeaderSize: headerSize,
		WritePayload:    true,
		FooterPad:       footerPad,
		ExtensionFor:    ExtensionFor,
	}
	return &Archive{Engine: archive.New(fs, cfg)}
}

// Texture decodes name's raw payload as a TextureEntry. Returns an
// error if name is absent or its payload is too short to be one.
func (a *Archive) Texture(name string) (*TextureEntry, error) {
	payload := a.Get(name)
	return ReadTextureEntry(payload)
}
