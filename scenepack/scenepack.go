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

package scenepack

import (
	"github.com/spf13/afero"

	"github.com/Zatarita/SeK/archive"
	"github.com/Zatarita/SeK/container"
)

// Archive is a scene-pack archive: H1A container, 32-bit entry count,
// computed (not fixed) header size, payloads concatenated after the
// header table, no footer pad.
type Archive struct {
	*archive.Engine
}

// Open returns an empty scene-pack Archive backed by fs.
func Open(fs afero.Fs) *Archive {
	cfg := archive.Config{
		Variant:         container.H1A,
		ChildCountWidth: 4,
		NewEntry:        func() archive.Entry { return New() },
		WritePayload:    true,
		ExtensionFor:    ExtensionFor,
	}
	return &Archive{Engine: archive.New(fs, cfg)}
}
