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
	"errors"
	"fmt"
)

// ErrFileAccess indicates the source or destination archive file could
// not be opened.
var ErrFileAccess = errors.New("archive: file access error")

// AbsentEntryError indicates an operation referenced a name not present
// in the archive's entry map.
type AbsentEntryError struct {
	Name string
}

func (e AbsentEntryError) Error() string {
	return fmt.Sprintf("archive: no entry named %q", e.Name)
}

// DuplicateEntryError indicates New was called with a name that already
// exists in the archive.
type DuplicateEntryError struct {
	Name string
}

func (e DuplicateEntryError) Error() string {
	return fmt.Sprintf("archive: entry %q already exists", e.Name)
}
