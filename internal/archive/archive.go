// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive extracts the KML document from a KMZ (zip) container.
// Entries are scanned in stored order and the first entry whose name ends in
// ".kml" is copied byte for byte to the requested path.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/kmz-report/pkg/types"
)

const kmlSuffix = ".kml"

var (
	// ErrMissingKML is returned when the archive holds no .kml entry.
	ErrMissingKML = errors.New("no KML file found in the KMZ archive")

	// ErrAmbiguousKML is returned under the error policy when the archive
	// holds more than one .kml entry.
	ErrAmbiguousKML = errors.New("KMZ archive holds more than one KML file")

	// ErrOutputIsArchive is returned when the output path names the archive
	// being read.
	ErrOutputIsArchive = errors.New("KML output path is the KMZ archive itself")
)

// Entry describes the archive entry that was extracted.
type Entry struct {
	// Name is the entry name inside the archive.
	Name string

	// Size is the number of bytes written to the output path.
	Size int64

	// Ignored lists the other .kml entries, in archive order, that were
	// skipped under the first-entry policy.
	Ignored []string
}

// Extract copies the first .kml entry of the archive at kmzPath to outPath.
// It returns ErrMissingKML when there is none, in which case outPath is not
// created. With cfg.MultipleKML set to error, an archive with several .kml
// entries fails with ErrAmbiguousKML before anything is written.
func Extract(kmzPath, outPath string, cfg types.ExtractionConfig) (Entry, error) {
	if !cfg.MultipleKML.Valid() {
		return Entry{}, fmt.Errorf("unknown multiple_kml policy %q: use first or error", cfg.MultipleKML)
	}

	if sameFile(kmzPath, outPath) {
		return Entry{}, fmt.Errorf("%s: %w", outPath, ErrOutputIsArchive)
	}

	zr, err := zip.OpenReader(kmzPath)
	if err != nil {
		return Entry{}, fmt.Errorf("opening KMZ archive %s: %w", kmzPath, err)
	}
	defer zr.Close()

	matches := kmlEntries(zr.File)
	if len(matches) == 0 {
		return Entry{}, fmt.Errorf("%s: %w", kmzPath, ErrMissingKML)
	}
	if len(matches) > 1 && cfg.MultipleKML == types.MultipleKMLError {
		return Entry{}, fmt.Errorf("%s: %w: %s", kmzPath, ErrAmbiguousKML, strings.Join(entryNames(matches), ", "))
	}

	first := matches[0]
	n, err := copyEntry(first, outPath)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Name:    first.Name,
		Size:    n,
		Ignored: entryNames(matches[1:]),
	}, nil
}

// List returns the names of all .kml entries in the archive, in stored order.
func List(kmzPath string) ([]string, error) {
	zr, err := zip.OpenReader(kmzPath)
	if err != nil {
		return nil, fmt.Errorf("opening KMZ archive %s: %w", kmzPath, err)
	}
	defer zr.Close()

	return entryNames(kmlEntries(zr.File)), nil
}

// sameFile reports whether a and b name the same file, either as paths or,
// when both exist, on disk.
func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func kmlEntries(files []*zip.File) []*zip.File {
	var out []*zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.HasSuffix(f.Name, kmlSuffix) {
			out = append(out, f)
		}
	}
	return out
}

func entryNames(files []*zip.File) []string {
	if len(files) == 0 {
		return nil
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

// copyEntry decompresses f into outPath. A failed copy removes the partial
// file.
func copyEntry(f *zip.File, outPath string) (int64, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("opening archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating output directory: %w", err)
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", outPath, err)
	}

	n, err := io.Copy(out, rc)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outPath)
		return 0, fmt.Errorf("writing %s from %s: %w", outPath, f.Name, err)
	}
	return n, nil
}
