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

package sourcearchive

import (
	"fmt"
	"path/filepath"
	"strings"
)

// packExtensions are file extensions that indicate a pak archive, or one of
// its extracted per-entry payload files.
var packExtensions = map[string]bool{
	".s3dpak":      true,
	".imeta":       true,
	".ipak":        true,
	".imeta_entry": true,
	".ipak_entry":  true,
}

// IsPakFile checks if a filename has a recognized pak extension.
func IsPakFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return packExtensions[ext]
}

// DetectPakFile finds the first pak file in a distribution archive.
// It scans the archive's file list and returns the path to the first file
// that has a recognized pak extension.
func DetectPakFile(arc Archive) (string, error) {
	files, err := arc.List()
	if err != nil {
		return "", fmt.Errorf("list archive files: %w", err)
	}

	for _, file := range files {
		if IsPakFile(file.Name) {
			return file.Name, nil
		}
	}

	return "", NoPakFilesError{Archive: "archive"}
}
