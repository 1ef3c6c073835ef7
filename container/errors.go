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

package container

import "errors"

var (
	// ErrFileAccess indicates the source or destination could not be opened.
	ErrFileAccess = errors.New("container: file access error")

	// ErrBounds indicates a requested (offset, size) exceeds the logical
	// stream length, or a chunk index is out of range.
	ErrBounds = errors.New("container: out of bounds")

	// ErrUnknownVariant indicates a variant tag outside {H1A, H2A, H2AM}.
	ErrUnknownVariant = errors.New("container: unknown variant")

	// ErrChunkDecode indicates zlib returned an error, or inflated a chunk
	// other than the last to fewer bytes than the chunk size.
	ErrChunkDecode = errors.New("container: chunk decode failed")

	// ErrClosed indicates an operation on a closed decoder.
	ErrClosed = errors.New("container: decoder closed")
)
