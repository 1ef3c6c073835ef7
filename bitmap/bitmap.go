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

package bitmap

import (
	"github.com/spf13/afero"

	"github.com/Zatarita/SeK/archive"
	"github.com/Zatarita/SeK/container"
)

// archiveFooterSize is the fixed total size spec.md's external-interface
// section documents for a bitmap-metadata archive: the header table is
// padded to this size with no payload section following it.
const archiveFooterSize = 0x290008

// Archive is a bitmap-metadata archive: H1A container, 64-bit entry
// count, a fixed-size (not computed) header region, and no payload
// section — every entry only describes bytes owned by a separate
// image-pack archive.
type Archive struct {
	*archive.Engine
}

// ExtensionFor returns the fixed save_all suffix for bitmap-metadata
// entries, per spec.md §6. Bitmap-metadata records carry no per-format
// extension table of their own — every entry extracts as .imeta_entry.
func ExtensionFor(format uint32) string {
	return ".imeta_entry"
}

// Open returns an empty bitmap-metadata Archive backed by fs.
func Open(fs afero.Fs) *Archive {
	cfg := archive.Config{
		Variant:         container.H1A,
		ChildCountWidth: 8,
		NewEntry:        func() archive.Entry { return New() },
		FixedHeaderSize: archiveFooterSize,
		WritePayload:    false,
		ExtensionFor:    ExtensionFor,
	}
	return &Archive{Engine: archive.New(fs, cfg)}
}
