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

package archive

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Zatarita/SeK/byteio"
	"github.com/Zatarita/SeK/container"
)

// maxEntryHeaderSize bounds the probe read used to discover the first
// entry's header length when locating the end of the header table.
const maxEntryHeaderSize = 0x200

// Config parameterizes Engine for one archive kind. It is the Go
// stand-in for the original's {decoder_variant, child_count_width,
// entry_codec, format_enum} template parameters.
type Config struct {
	// Variant selects the chunk container the archive is wrapped in.
	Variant container.Variant

	// ChildCountWidth is the byte width of the leading entry-count
	// field: 4 for scene-pack, 8 for bitmap-metadata/image-pack.
	ChildCountWidth int

	// NewEntry constructs a zero-value Entry of this archive's kind,
	// used when decoding header records off disk.
	NewEntry func() Entry

	// FixedHeaderSize, if nonzero, is used as the header region size
	// instead of computing it from Σ entry.HeaderSize() — used by
	// formats (bitmap-metadata, image-pack) whose header table occupies
	// a format-mandated constant region regardless of entry count.
	FixedHeaderSize int64

	// WritePayload controls whether Save concatenates entry payloads
	// after the header table. Bitmap-metadata archives hold no payload
	// section at all; scene-pack and image-pack do.
	WritePayload bool

	// FooterPad, when WritePayload is true, pads the saved file up to
	// this total size after the last payload (0x200000 for image-pack,
	// 0 — no pad — for scene-pack).
	FooterPad int64

	// ExtensionFor maps a format code to a save_all file extension
	// (including the leading dot), or "" if the format has none.
	ExtensionFor func(format uint32) string
}

// Engine is the generic archive reader/writer every concrete archive
// kind configures. It keeps entries in insertion order (spec.md §4.E,
// diverging intentionally from the original's sorted std::map — see
// DESIGN.md's Open Question decisions).
type Engine struct {
	fs  afero.Fs
	cfg Config

	order   []string
	entries map[string]Entry
	data    map[string][]byte

	dec *container.Decoder
}

// New returns an empty Engine backed by fs.
func New(fs afero.Fs, cfg Config) *Engine {
	return &Engine{
		fs:      fs,
		cfg:     cfg,
		entries: make(map[string]Entry),
		data:    make(map[string][]byte),
	}
}

// Load clears the current entry map, opens a decoder over path, and
// populates the entry map from its header table.
func (e *Engine) Load(path string) error {
	e.closeDecoder()
	e.order = nil
	e.entries = make(map[string]Entry)
	e.data = make(map[string][]byte)

	dec, err := container.Open(e.fs, path, e.cfg.Variant, false)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	e.dec = dec

	countBytes, err := dec.Get(0, int64(e.cfg.ChildCountWidth))
	if err != nil {
		return err
	}
	childCount := int(decodeCount(countBytes))

	probe, err := dec.Get(int64(e.cfg.ChildCountWidth), maxEntryHeaderSize)
	if err != nil {
		return err
	}
	if childCount == 0 {
		return nil
	}
	first := e.cfg.NewEntry()
	first.ReadHeader(byteio.NewReader(probe, byteio.LittleEndian))
	endOfHeader := first.Offset()

	headerBytes, err := dec.Get(int64(e.cfg.ChildCountWidth), endOfHeader-int64(e.cfg.ChildCountWidth))
	if err != nil {
		return err
	}
	r := byteio.NewReader(headerBytes, byteio.LittleEndian)
	for i := 0; i < childCount; i++ {
		entry := e.cfg.NewEntry()
		entry.ReadHeader(r)
		e.order = append(e.order, entry.Name())
		e.entries[entry.Name()] = entry
	}
	return nil
}

func decodeCount(b []byte) uint64 {
	r := byteio.NewReader(b, byteio.LittleEndian)
	if len(b) >= 8 {
		return r.ReadUint64()
	}
	return uint64(r.ReadUint32())
}

// List returns entry names in insertion order.
func (e *Engine) List() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Has reports whether name is present.
func (e *Engine) Has(name string) bool {
	_, ok := e.entries[name]
	return ok
}

// Entry returns name's underlying Entry for kind-specific field access
// (e.g. bitmap.Entry.SetDimensions) beyond the generic accessors Engine
// itself exposes.
func (e *Engine) Entry(name string) (Entry, bool) {
	entry, ok := e.entries[name]
	return entry, ok
}

// Get returns name's uncompressed payload, caching it on first fetch.
// Returns an empty slice for an absent name.
func (e *Engine) Get(name string) []byte {
	entry, ok := e.entries[name]
	if !ok {
		return []byte{}
	}
	if cached, ok := e.data[name]; ok {
		return cached
	}
	if e.dec == nil {
		return []byte{}
	}
	payload, err := e.dec.Get(entry.Offset(), entry.Size())
	if err != nil {
		return []byte{}
	}
	e.data[name] = payload
	return payload
}

// Extract writes name's payload to path on fs.
func (e *Engine) Extract(name, path string) error {
	if !e.Has(name) {
		return AbsentEntryError{Name: name}
	}
	payload := e.Get(name)
	if err := afero.WriteFile(e.fs, path, payload, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	return nil
}

// New inserts a new entry, failing if name already exists.
func (e *Engine) New(name string, format uint32, data []byte) error {
	if e.Has(name) {
		return DuplicateEntryError{Name: name}
	}
	entry := e.cfg.NewEntry()
	entry.SetName(name)
	entry.SetFormat(format)
	entry.SetSize(int64(len(data)))
	e.order = append(e.order, name)
	e.entries[name] = entry
	e.data[name] = data
	return nil
}

// SetData replaces name's payload, failing if absent.
func (e *Engine) SetData(name string, data []byte) error {
	entry, ok := e.entries[name]
	if !ok {
		return AbsentEntryError{Name: name}
	}
	entry.SetSize(int64(len(data)))
	e.data[name] = data
	return nil
}

// SetFormat replaces name's format tag, failing if absent.
func (e *Engine) SetFormat(name string, format uint32) error {
	entry, ok := e.entries[name]
	if !ok {
		return AbsentEntryError{Name: name}
	}
	entry.SetFormat(format)
	return nil
}

// Delete removes name, failing if absent.
func (e *Engine) Delete(name string) error {
	if !e.Has(name) {
		return AbsentEntryError{Name: name}
	}
	delete(e.entries, name)
	delete(e.data, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return nil
}

// expand forces every entry's payload into memory, so a subsequent
// Save can rewrite offsets without the rewritten container invalidating
// bytes still owned by the (possibly soon-to-be-overwritten) source.
func (e *Engine) expand() {
	for _, name := range e.order {
		e.Get(name)
	}
}

func (e *Engine) headerSize() int64 {
	if e.cfg.FixedHeaderSize != 0 {
		return e.cfg.FixedHeaderSize
	}
	total := int64(e.cfg.ChildCountWidth)
	for _, name := range e.order {
		total += e.entries[name].HeaderSize()
	}
	return total
}

// Save writes the archive to path in its plain (uncompressed-container)
// layout. It does not wrap the result in a container.Encoder pass — see
// SaveCompressed for that.
func (e *Engine) Save(path string) error {
	e.expand()

	headerSize := e.headerSize()
	cursor := headerSize
	for _, name := range e.order {
		entry := e.entries[name]
		entry.SetOffset(cursor)
		cursor += entry.Size()
	}

	w := byteio.NewWriter(byteio.LittleEndian)
	if e.cfg.ChildCountWidth >= 8 {
		w.WriteUint64(uint64(len(e.order)))
	} else {
		w.WriteUint32(uint32(len(e.order)))
	}
	for _, name := range e.order {
		e.entries[name].WriteHeader(w)
	}
	w.PadTo(int(headerSize))

	if e.cfg.WritePayload {
		for _, name := range e.order {
			w.WriteRaw(e.data[name])
		}
		if e.cfg.FooterPad > 0 {
			w.PadTo(int(e.cfg.FooterPad))
		}
	}

	if err := afero.WriteFile(e.fs, path, w.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	return nil
}

// SaveCompressed writes the plain layout to a temporary file, then runs
// it through a matching container.Encoder to produce the final
// compressed archive at path.
func (e *Engine) SaveCompressed(path string) error {
	tmp := path + ".tmp"
	if err := e.Save(tmp); err != nil {
		return err
	}
	defer func() { _ = e.fs.Remove(tmp) }()

	enc := container.NewEncoder()
	if err := enc.Compress(e.fs, tmp, path, e.cfg.Variant); err != nil {
		return err
	}
	return nil
}

// SaveAll extracts every entry into folder/name.ext, where ext follows
// the archive kind's format-to-extension mapping.
func (e *Engine) SaveAll(folder string) error {
	if err := e.fs.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	for _, name := range e.order {
		entry := e.entries[name]
		ext := ""
		if e.cfg.ExtensionFor != nil {
			ext = e.cfg.ExtensionFor(entry.Format())
		}
		if err := e.Extract(name, filepath.Join(folder, name+ext)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) closeDecoder() {
	if e.dec != nil {
		_ = e.dec.Close()
		e.dec = nil
	}
}

// Close releases the underlying decoder, if any. Idempotent.
func (e *Engine) Close() error {
	e.closeDecoder()
	return nil
}
