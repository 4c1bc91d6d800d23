// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kmz-report/internal/maplink"
	"github.com/pdiddy/kmz-report/pkg/types"
)

// ExportRecord is one placemark with its position and derived map link.
type ExportRecord struct {
	Position    int    `json:"position" yaml:"position"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Coordinates string `json:"coordinates" yaml:"coordinates"`
	MapLink     string `json:"map_link" yaml:"map_link"`
}

// ExportFile is the document written by the yaml and json formats.
type ExportFile struct {
	Title      string         `json:"title" yaml:"title"`
	Count      int            `json:"count" yaml:"count"`
	Placemarks []ExportRecord `json:"placemarks" yaml:"placemarks"`
}

// RecordFile renders records as a YAML or JSON document.
type RecordFile struct {
	format   types.Format
	template maplink.Template
	title    string
}

// NewRecordFile returns the renderer for cfg.Format, which must be yaml or
// json.
func NewRecordFile(cfg types.RenderConfig) (*RecordFile, error) {
	if cfg.Format != types.FormatYAML && cfg.Format != types.FormatJSON {
		return nil, fmt.Errorf("%w %q for record file", ErrUnknownFormat, cfg.Format)
	}
	tpl, err := linkTemplate(cfg, maplink.GoogleMaps)
	if err != nil {
		return nil, err
	}
	return &RecordFile{format: cfg.Format, template: tpl, title: titleOf(cfg)}, nil
}

// Format implements Renderer.
func (r *RecordFile) Format() types.Format { return r.format }

// Render implements Renderer.
func (r *RecordFile) Render(records []types.Placemark, outPath string) error {
	data, err := r.Marshal(records)
	if err != nil {
		return err
	}
	return writeAtomic(outPath, func(tmpPath string) error {
		return os.WriteFile(tmpPath, data, 0o644)
	})
}

// Marshal encodes records in the renderer's format.
func (r *RecordFile) Marshal(records []types.Placemark) ([]byte, error) {
	doc := ExportFile{
		Title:      r.title,
		Count:      len(records),
		Placemarks: make([]ExportRecord, len(records)),
	}
	for i, p := range records {
		doc.Placemarks[i] = ExportRecord{
			Position:    i + 1,
			Name:        p.Name,
			Description: p.Description,
			Coordinates: p.Coordinates,
			MapLink:     r.template.Link(p.Coordinates),
		}
	}

	if r.format == types.FormatJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return append(data, '\n'), nil
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}
