//go:build mage

// Package main contains Mage build targets for kmz-report developer tooling.
package main

import (
	"archive/zip"
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/twpayne/go-kml"
)

const (
	binDir  = "bin"
	binName = "kmz-report"
	cmdPkg  = "./cmd/kmz-report"

	sampleDir = "testdata"
	sampleKMZ = "sample.kmz"
)

// Build compiles the CLI binary into bin/. The version comes from
// KMZ_REPORT_VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := os.Getenv("KMZ_REPORT_VERSION")
	if version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Vet runs go vet over all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test runs the unit tests after vet.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "./...")
}

// Sample writes testdata/sample.kmz, a small archive for trying the CLI:
//
//	mage sample && bin/kmz-report convert testdata/sample.kmz --format pdf
func Sample() error {
	doc := kml.KML(kml.Document(
		kml.Name("Istanbul landmarks"),
		samplePlacemark("Hagia Sophia", "Former cathedral and mosque, Sultanahmet", 28.9801, 41.0086),
		samplePlacemark("Galata Tower", "Medieval stone tower in Beyoğlu", 28.9741, 41.0256),
		samplePlacemark("Çırağan Palace", "Ottoman palace on the Bosphorus", 29.0158, 41.0436),
		kml.Placemark(kml.Name("Unplaced marker")),
	))

	var body bytes.Buffer
	if err := doc.WriteIndent(&body, "", "  "); err != nil {
		return fmt.Errorf("encoding sample KML: %w", err)
	}

	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sampleDir, err)
	}
	out := filepath.Join(sampleDir, sampleKMZ)
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("doc.kml")
	if err == nil {
		_, err = w.Write(body.Bytes())
	}
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func samplePlacemark(name, description string, lon, lat float64) kml.Element {
	return kml.Placemark(
		kml.Name(name),
		kml.Description(description),
		kml.Point(kml.Coordinates(kml.Coordinate{Lon: lon, Lat: lat})),
	)
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// skipDir reports whether a directory is left out of the counts.
func skipDir(name string) bool {
	return name != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == binDir)
}

// countGoLines counts non-blank lines in Go files, split into production
// and test files.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := nonBlankLines(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

func nonBlankLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}

// countDocWords counts words in the top-level Markdown files.
func countDocWords(root string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*.md"))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
	}
	return total, nil
}
