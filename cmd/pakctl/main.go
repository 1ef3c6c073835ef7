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

// Command pakctl loads, inspects, and rewrites scene-pack, bitmap-metadata
// and image-pack archives.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/Zatarita/SeK/archive"
	"github.com/Zatarita/SeK/bitmap"
	"github.com/Zatarita/SeK/imagepack"
	"github.com/Zatarita/SeK/scenepack"
)

var (
	kind      = flag.String("kind", "", "archive kind: scenepack, bitmap, imagepack (required)")
	inputFile = flag.String("i", "", "input archive path (required)")
	op        = flag.String("op", "list", "operation: list, extract, delete, save-all")
	entryName = flag.String("entry", "", "entry name (required for extract/delete)")
	outFile   = flag.String("o", "", "output path (required for delete's save step, or extract's destination)")
	dir       = flag.String("dir", "", "destination directory (required for save-all)")
	version   = flag.Bool("version", false, "print version and exit")
)

const appVersion = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -kind <kind> -i <file> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Loads and rewrites scene-pack/bitmap-metadata/image-pack archives.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -kind scenepack -i level.s3dpak\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -kind scenepack -i level.s3dpak -op extract -entry Scene -o scene.bin\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -kind scenepack -i level.s3dpak -op delete -entry TexturesInfo -o out.s3dpak\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -kind bitmap -i textures.imeta -op save-all -dir ./extracted\n", os.Args[0])
	}
	flag.Parse()

	if *version {
		fmt.Printf("pakctl version %s\n", appVersion)
		os.Exit(0)
	}

	if *kind == "" || *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: -kind and -i are required\n")
		flag.Usage()
		os.Exit(1)
	}

	fs := afero.NewOsFs()
	arc, err := openArchive(fs, *kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer arc.Close()

	if err := arc.Load(*inputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", *inputFile, err)
		os.Exit(1)
	}

	switch *op {
	case "list":
		for _, name := range arc.List() {
			fmt.Println(name)
		}
	case "extract":
		if *entryName == "" || *outFile == "" {
			fmt.Fprintf(os.Stderr, "Error: -entry and -o are required for extract\n")
			os.Exit(1)
		}
		if err := arc.Extract(*entryName, *outFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error extracting %s: %v\n", *entryName, err)
			os.Exit(1)
		}
	case "delete":
		if *entryName == "" || *outFile == "" {
			fmt.Fprintf(os.Stderr, "Error: -entry and -o are required for delete\n")
			os.Exit(1)
		}
		if err := arc.Delete(*entryName); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting %s: %v\n", *entryName, err)
			os.Exit(1)
		}
		if err := arc.SaveCompressed(*outFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving %s: %v\n", *outFile, err)
			os.Exit(1)
		}
	case "save-all":
		if *dir == "" {
			fmt.Fprintf(os.Stderr, "Error: -dir is required for save-all\n")
			os.Exit(1)
		}
		if err := arc.SaveAll(*dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving entries to %s: %v\n", *dir, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown -op %q\n", *op)
		os.Exit(1)
	}
}

func openArchive(fs afero.Fs, kind string) (*archive.Engine, error) {
	switch kind {
	case "scenepack":
		return scenepack.Open(fs).Engine, nil
	case "bitmap":
		return bitmap.Open(fs).Engine, nil
	case "imagepack":
		return imagepack.Open(fs).Engine, nil
	default:
		return nil, fmt.Errorf("unknown archive kind %q (want scenepack, bitmap, or imagepack)", kind)
	}
}
