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

// Package scenepack implements the scene-pack archive kind: entries
// named by a world/scene asset path, tagged with one of 32 scene
// formats, stored in an H1A chunk container.
package scenepack

import "github.com/Zatarita/SeK/byteio"

// Format is the scene-pack entry's 32-value type tag.
type Format uint32

// Scene-pack format values, per spec.md §6's format-to-extension table.
const (
	FormatSceneData            Format = 0
	FormatCacheBlock           Format = 2
	FormatShaderCache          Format = 4
	FormatTexturesInfo         Format = 5
	FormatTexture              Format = 6
	FormatTexturesMips64       Format = 7
	FormatSound                Format = 9
	FormatWaveBanksMem         Format = 10
	FormatWaveBanksStrmFile    Format = 11
	FormatTPL                  Format = 12
	FormatVoiceSpline          Format = 13
	FormatString               Format = 14
	FormatTexturesDistanceFile Format = 20
	FormatCheckpointTexFile    Format = 21
	FormatLoadingScreenGfx     Format = 22
	FormatAnimStream           Format = 30
	FormatAnimBank             Format = 31
)

// extensions maps every defined format value (0..31) to its save_all
// file extension, including values with no extension ("").
var extensions = [32]string{
	0:  ".scenedata",
	2:  ".cacheblock",
	4:  ".shadercache",
	5:  ".texturesinfo",
	6:  ".texture",
	7:  ".texturesmips64",
	9:  ".sound",
	10: ".wavebanks_mem",
	11: ".wavebanks_strm_file",
	12: ".tpl",
	13: ".voicespline",
	14: ".string",
	20: ".texturesdistancefile",
	21: ".checkpointtexfile",
	22: ".loadingscreengfx",
	30: ".animstream",
	31: ".animbank",
}

// ExtensionFor returns format's save_all extension, or "" if it has
// none or is out of range.
func ExtensionFor(format uint32) string {
	if format >= uint32(len(extensions)) {
		return ""
	}
	return extensions[format]
}

// fixedFieldsSize is the byte width of a scene-pack entry header
// excluding the variable-length name: offset(4) + size(4) + name_len(4)
// + format(4) + padding(8).
const fixedFieldsSize = 24

// Entry is the scene-pack archive.Entry implementation.
type Entry struct {
	name   string
	offset int64
	size   int64
	format uint32
}

// New returns a zero-value Entry, satisfying archive.Config.NewEntry.
func New() *Entry { return &Entry{} }

func (e *Entry) Name() string        { return e.name }
func (e *Entry) SetName(name string) { e.name = name }
func (e *Entry) Format() uint32       { return e.format }
func (e *Entry) SetFormat(f uint32)   { e.format = f }
func (e *Entry) Offset() int64        { return e.offset }
func (e *Entry) SetOffset(off int64)  { e.offset = off }
func (e *Entry) Size() int64          { return e.size }
func (e *Entry) SetSize(size int64)   { e.size = size }
func (e *Entry) HeaderSize() int64    { return fixedFieldsSize + int64(len(e.name)) }

// ReadHeader decodes `[offset u32][size u32][name_len u32][name bytes]
// [format u32][padding u64]` from r.
func (e *Entry) ReadHeader(r *byteio.Reader) {
	e.offset = int64(r.ReadUint32())
	e.size = int64(r.ReadUint32())
	nameLen := int(r.ReadUint32())
	e.name = r.ReadString(nameLen)
	e.format = r.ReadUint32()
	r.Pad(8) // padding u64
}

// WriteHeader writes the entry back out in the same layout.
func (e *Entry) WriteHeader(w *byteio.Writer) {
	w.WriteUint32(uint32(e.offset))
	w.WriteUint32(uint32(e.size))
	w.WriteUint32(uint32(len(e.name)))
	w.WriteString(e.name)
	w.WriteUint32(e.format)
	w.Pad(8)
}
