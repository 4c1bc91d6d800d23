// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes placemark records as reports. Each output format is a
// Renderer; New picks one from the render configuration.
//
// Renderers write to a temporary file next to the target and rename it into
// place, so a failed render never leaves a partial report behind.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/kmz-report/internal/maplink"
	"github.com/pdiddy/kmz-report/pkg/types"
)

const (
	// DefaultTitle is the PDF heading and workbook title.
	DefaultTitle = "KML Data Export"

	// DefaultSheetName is the worksheet name of spreadsheet reports.
	DefaultSheetName = "KML Data"

	creator = "kmz-report"
)

// ErrUnknownFormat is returned by New for a format with no renderer.
var ErrUnknownFormat = errors.New("unknown report format")

// Renderer writes an ordered record sequence to a report file. Records are
// written in the given order, one row or block per record.
type Renderer interface {
	// Format returns the format this renderer produces.
	Format() types.Format

	// Render writes records to outPath, replacing any existing file.
	Render(records []types.Placemark, outPath string) error
}

// Formats lists every format New accepts.
func Formats() []types.Format {
	return []types.Format{
		types.FormatXLSX,
		types.FormatXLSXLinked,
		types.FormatPDF,
		types.FormatSQLite,
		types.FormatYAML,
		types.FormatJSON,
	}
}

// New returns the renderer for cfg.Format.
func New(cfg types.RenderConfig) (Renderer, error) {
	switch cfg.Format {
	case types.FormatXLSX:
		return NewSheet(cfg)
	case types.FormatXLSXLinked:
		return NewLinkedSheet(cfg)
	case types.FormatPDF:
		return NewDocument(cfg)
	case types.FormatSQLite:
		return NewSQLite(cfg)
	case types.FormatYAML, types.FormatJSON:
		return NewRecordFile(cfg)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, cfg.Format)
}

// linkTemplate returns the configured template, or fallback when none is set.
func linkTemplate(cfg types.RenderConfig, fallback string) (maplink.Template, error) {
	if cfg.LinkTemplate == "" {
		return maplink.Template(fallback), nil
	}
	return maplink.NewTemplate(cfg.LinkTemplate)
}

func titleOf(cfg types.RenderConfig) string {
	if cfg.Title == "" {
		return DefaultTitle
	}
	return cfg.Title
}

// writeAtomic calls write with a temporary path in the directory of outPath
// and renames the result to outPath on success. The temporary name keeps the
// extension of outPath for writers that check it.
func writeAtomic(outPath string, write func(tmpPath string) error) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".kmz-report-*"+filepath.Ext(outPath))
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := write(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting report permissions: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("moving report into place: %w", err)
	}
	return nil
}
