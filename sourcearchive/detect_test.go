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

package sourcearchive_test

import (
	"errors"
	"testing"

	"github.com/Zatarita/SeK/sourcearchive"
)

func TestIsPakFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     bool
	}{
		{"a10.s3dpak", true},
		{"A10.S3DPAK", true},
		{"world.imeta", true},
		{"world.ipak", true},
		{"TexturesInfo.imeta_entry", true},
		{"Scene.ipak_entry", true},

		{"readme.txt", false},
		{"game.bin", false},
		{"notes.doc", false},
		{"archive.zip", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()

			got := sourcearchive.IsPakFile(tt.filename)
			if got != tt.want {
				t.Errorf("IsPakFile(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDetectPakFile_FindsPak(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	files := map[string][]byte{
		"readme.txt": []byte("readme"),
		"a10.s3dpak": make([]byte, 100),
		"notes.doc":  []byte("notes"),
	}
	zipPath := createTestZIP(t, tmpDir, "mod.zip", files)

	arc, err := sourcearchive.Open(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer func() { _ = arc.Close() }()

	pakPath, err := sourcearchive.DetectPakFile(arc)
	if err != nil {
		t.Fatalf("detect pak file: %v", err)
	}

	if pakPath != "a10.s3dpak" {
		t.Errorf("got %q, want %q", pakPath, "a10.s3dpak")
	}
}

func TestDetectPakFile_NoPaks(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	files := map[string][]byte{
		"readme.txt": []byte("readme"),
		"notes.doc":  []byte("notes"),
	}
	zipPath := createTestZIP(t, tmpDir, "nopaks.zip", files)

	arc, err := sourcearchive.Open(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer func() { _ = arc.Close() }()

	_, err = sourcearchive.DetectPakFile(arc)
	if err == nil {
		t.Error("expected error for archive with no pak files")
	}

	var noPaksErr sourcearchive.NoPakFilesError
	if !errors.As(err, &noPaksErr) {
		t.Errorf("expected NoPakFilesError, got %T", err)
	}
}

func TestDetectPakFile_MultiplePaks(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// ZIP iteration order may vary, but we want to ensure at least one is returned.
	files := map[string][]byte{
		"a10.s3dpak": make([]byte, 100),
		"world.imeta": make([]byte, 200),
	}
	zipPath := createTestZIP(t, tmpDir, "multipak.zip", files)

	arc, err := sourcearchive.Open(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer func() { _ = arc.Close() }()

	pakPath, err := sourcearchive.DetectPakFile(arc)
	if err != nil {
		t.Fatalf("detect pak file: %v", err)
	}

	if !sourcearchive.IsPakFile(pakPath) {
		t.Errorf("returned path %q is not a pak file", pakPath)
	}
}
