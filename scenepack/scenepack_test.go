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

package scenepack_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/spf13/afero"

	"github.com/Zatarita/SeK/scenepack"
)

// TestSceneDeleteAndSave reproduces spec.md's scenario E1.
func TestSceneDeleteAndSave(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	arc := scenepack.Open(fs)

	texturesInfo := bytes.Repeat([]byte{0x01}, 1024)
	scene := bytes.Repeat([]byte{0x02}, 2048)

	if err := arc.New("TexturesInfo", uint32(scenepack.FormatTexturesInfo), texturesInfo); err != nil {
		t.Fatalf("new TexturesInfo: %v", err)
	}
	if err := arc.New("Scene", 16, scene); err != nil {
		t.Fatalf("new Scene: %v", err)
	}

	if err := arc.Delete("TexturesInfo"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := arc.Save("/out.s3dpak"); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := afero.ReadFile(fs, "/out.s3dpak")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if got := binary.LittleEndian.Uint32(raw[:4]); got != 1 {
		t.Fatalf("child_count = %d, want 1", got)
	}

	offset := binary.LittleEndian.Uint32(raw[4:8])
	size := binary.LittleEndian.Uint32(raw[8:12])
	nameLen := binary.LittleEndian.Uint32(raw[12:16])
	name := string(raw[16 : 16+nameLen])

	if offset != 33 {
		t.Errorf("offset = %d, want 33", offset)
	}
	if size != 2048 {
		t.Errorf("size = %d, want 2048", size)
	}
	if name != "Scene" {
		t.Errorf("name = %q, want %q", name, "Scene")
	}

	payload := raw[offset : int(offset)+len(scene)]
	if !bytes.Equal(payload, scene) {
		t.Error("payload mismatch after delete-and-save")
	}
}

// TestHeaderSizeStability covers property 7.
func TestHeaderSizeStability(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	arc := scenepack.Open(fs)

	if err := arc.New("A", 0, []byte("hello")); err != nil {
		t.Fatalf("new A: %v", err)
	}
	if err := arc.New("BB", 1, []byte("world!")); err != nil {
		t.Fatalf("new BB: %v", err)
	}
	if err := arc.Save("/out.s3dpak"); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := afero.ReadFile(fs, "/out.s3dpak")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	// Σ entry.header_size() + 4 (child_count) must equal the first
	// payload's on-disk offset.
	wantHeaderSize := int64(4) + (24 + int64(len("A"))) + (24 + int64(len("BB")))
	firstOffset := binary.LittleEndian.Uint32(raw[4:8])
	if int64(firstOffset) != wantHeaderSize {
		t.Errorf("first payload offset = %d, want %d", firstOffset, wantHeaderSize)
	}
}

// TestLoadSaveRoundTrip covers property 6 against a genuine, chunk-
// compressed archive (SaveCompressed + Load): load; delete(x); save;
// load leaves the entry map equal to the original minus x, with byte-
// identical remaining payloads. Save's own plain (uncompressed-
// container) output is exercised directly in TestSceneDeleteAndSave
// instead, since that layout has no chunk-table header for Load to
// parse — see DESIGN.md on Save vs. SaveCompressed.
func TestLoadSaveRoundTrip(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	arc := scenepack.Open(fs)
	if err := arc.New("Keep", 3, []byte("keep-me")); err != nil {
		t.Fatalf("new Keep: %v", err)
	}
	if err := arc.New("Drop", 4, []byte("drop-me")); err != nil {
		t.Fatalf("new Drop: %v", err)
	}
	if err := arc.SaveCompressed("/a.s3dpak"); err != nil {
		t.Fatalf("save compressed: %v", err)
	}

	arc2 := scenepack.Open(fs)
	if err := arc2.Load("/a.s3dpak"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := arc2.Delete("Drop"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := arc2.SaveCompressed("/b.s3dpak"); err != nil {
		t.Fatalf("save compressed: %v", err)
	}

	arc3 := scenepack.Open(fs)
	if err := arc3.Load("/b.s3dpak"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	names := arc3.List()
	if len(names) != 1 || names[0] != "Keep" {
		t.Fatalf("entry map = %v, want [Keep]", names)
	}
	if got := arc3.Get("Keep"); !bytes.Equal(got, []byte("keep-me")) {
		t.Errorf("payload = %q, want %q", got, "keep-me")
	}
}
