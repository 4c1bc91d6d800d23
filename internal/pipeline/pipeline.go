// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs extract, parse and render for KMZ archives. Each
// stage completes before the next starts; a batch processes archives one
// after another and keeps going past failures.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/kmz-report/internal/archive"
	"github.com/pdiddy/kmz-report/internal/kml"
	"github.com/pdiddy/kmz-report/internal/render"
	"github.com/pdiddy/kmz-report/pkg/types"
)

const kmlExt = ".kml"

var (
	// ErrExplicitPathInBatch is returned when an explicit report or KML path
	// is configured for more than one input.
	ErrExplicitPathInBatch = errors.New("explicit output paths need a single input")

	// ErrPathCollision is returned when the KML path and the report path are
	// the same file.
	ErrPathCollision = errors.New("KML path and report path are the same file")

	// ErrDuplicateOutput is returned in a batch when an archive would write a
	// report or KML path already written by an earlier archive.
	ErrDuplicateOutput = errors.New("output path already used in this batch")
)

// Result describes one converted archive.
type Result struct {
	Input      string
	KMLPath    string
	ReportPath string
	Entry      archive.Entry
	Placemarks int
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Converted int
	Failed    int
}

// Total returns the number of archives processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any archive failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Paths returns the report and KML paths for input. Explicit paths in
// cfg.Output apply when single is true; otherwise the report goes to
// Output.Dir as <basename><ext> and the KML sits next to it.
func Paths(input string, cfg types.PipelineConfig, format types.Format, single bool) (report, kmlPath string, err error) {
	out := cfg.Output
	if !single && (out.Path != "" || out.KMLPath != "") {
		return "", "", ErrExplicitPathInBatch
	}

	report = out.Path
	if report == "" {
		dir := out.Dir
		if dir == "" {
			dir = "."
		}
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		report = filepath.Join(dir, base+format.Extension())
	}

	kmlPath = out.KMLPath
	if kmlPath == "" {
		kmlPath = strings.TrimSuffix(report, filepath.Ext(report)) + kmlExt
	}

	if filepath.Clean(kmlPath) == filepath.Clean(report) {
		return "", "", fmt.Errorf("%w: %s", ErrPathCollision, report)
	}
	return report, kmlPath, nil
}

// Run converts one archive. Progress lines go to w and warnings to warn.
// The extracted KML is kept at the derived KML path.
func Run(input string, cfg types.PipelineConfig, r render.Renderer, w, warn io.Writer) (Result, error) {
	return run(input, cfg, r, true, w, warn)
}

func run(input string, cfg types.PipelineConfig, r render.Renderer, single bool, w, warn io.Writer) (Result, error) {
	res := Result{Input: input}

	report, kmlPath, err := Paths(input, cfg, r.Format(), single)
	if err != nil {
		return res, err
	}
	res.ReportPath = report
	res.KMLPath = kmlPath

	entry, err := archive.Extract(input, kmlPath, cfg.Extraction)
	if err != nil {
		return res, fmt.Errorf("extracting: %w", err)
	}
	res.Entry = entry
	fmt.Fprintf(w, "extracted: %s -> %s (%d bytes)\n", entry.Name, kmlPath, entry.Size)
	if len(entry.Ignored) > 0 {
		fmt.Fprintf(warn, "warning: %s: ignoring additional KML entries: %s\n",
			input, strings.Join(entry.Ignored, ", "))
	}

	records, err := kml.ParseFile(kmlPath)
	if err != nil {
		return res, fmt.Errorf("parsing: %w", err)
	}
	res.Placemarks = len(records)
	fmt.Fprintf(w, "parsed: %d placemarks\n", len(records))
	if n := missingCoordinates(records); n > 0 {
		fmt.Fprintf(warn, "warning: %s: %d placemarks without coordinates\n", input, n)
	}

	if err := r.Render(records, report); err != nil {
		return res, fmt.Errorf("rendering %s: %w", r.Format(), err)
	}
	fmt.Fprintf(w, "rendered: %s\n", report)
	return res, nil
}

func missingCoordinates(records []types.Placemark) int {
	n := 0
	for _, r := range records {
		if !r.HasCoordinates() {
			n++
		}
	}
	return n
}

// RunBatch converts each input in order, printing per-archive status to w
// and a summary at the end. A failed archive does not stop the batch.
func RunBatch(inputs []string, cfg types.PipelineConfig, r render.Renderer, w, warn io.Writer) BatchResult {
	var result BatchResult
	single := len(inputs) == 1
	claimed := make(map[string]string)
	for _, in := range inputs {
		err := claimPaths(in, cfg, r.Format(), single, claimed)
		if err == nil {
			_, err = run(in, cfg, r, single, w, warn)
		}
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", in, err)
			result.Failed++
			continue
		}
		result.Converted++
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result
}

// claimPaths records the report and KML paths of input in claimed, keyed by
// cleaned path. It fails when another input already claimed either path.
func claimPaths(input string, cfg types.PipelineConfig, format types.Format, single bool, claimed map[string]string) error {
	report, kmlPath, err := Paths(input, cfg, format, single)
	if err != nil {
		return err
	}
	paths := []string{filepath.Clean(report), filepath.Clean(kmlPath)}
	for _, p := range paths {
		if prev, ok := claimed[p]; ok {
			return fmt.Errorf("%w: %s is written for %s", ErrDuplicateOutput, p, prev)
		}
	}
	for _, p := range paths {
		claimed[p] = input
	}
	return nil
}
