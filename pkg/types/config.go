// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MultipleKMLPolicy decides what the extractor does when an archive holds
// more than one .kml entry.
type MultipleKMLPolicy string

const (
	// MultipleKMLFirst uses the first .kml entry in archive order and
	// reports the others as ignored.
	MultipleKMLFirst MultipleKMLPolicy = "first"

	// MultipleKMLError refuses archives with more than one .kml entry.
	MultipleKMLError MultipleKMLPolicy = "error"
)

// Valid reports whether p is a known policy. The empty policy is valid and
// behaves like MultipleKMLFirst.
func (p MultipleKMLPolicy) Valid() bool {
	switch p {
	case "", MultipleKMLFirst, MultipleKMLError:
		return true
	}
	return false
}

// ExtractionConfig holds settings for the archive extraction stage.
type ExtractionConfig struct {
	// MultipleKML selects the behavior for archives with several .kml
	// entries: first or error.
	MultipleKML MultipleKMLPolicy `json:"multiple_kml" yaml:"multiple_kml" mapstructure:"multiple_kml"`
}

// Format identifies a report renderer.
type Format string

const (
	FormatXLSX       Format = "xlsx"
	FormatXLSXLinked Format = "xlsx-linked"
	FormatPDF        Format = "pdf"
	FormatSQLite     Format = "sqlite"
	FormatYAML       Format = "yaml"
	FormatJSON       Format = "json"
)

// Extension returns the output file extension for the format, including the
// leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatXLSX, FormatXLSXLinked:
		return ".xlsx"
	case FormatPDF:
		return ".pdf"
	case FormatSQLite:
		return ".db"
	case FormatYAML:
		return ".yaml"
	case FormatJSON:
		return ".json"
	}
	return ""
}

// PageSize names a PDF page size.
type PageSize string

const (
	PageLetter PageSize = "Letter"
	PageA4     PageSize = "A4"
)

// RenderConfig holds settings shared by the report renderers.
type RenderConfig struct {
	// Format selects the renderer.
	Format Format `json:"format" yaml:"format" mapstructure:"format"`

	// LinkTemplate overrides the map link URL template. It must contain the
	// {lat} and {lon} placeholders. Empty selects the renderer default.
	LinkTemplate string `json:"link_template,omitempty" yaml:"link_template,omitempty" mapstructure:"link_template"`

	// Title is the heading of the PDF document and the workbook title.
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// SheetName is the worksheet name for spreadsheet output.
	SheetName string `json:"sheet_name" yaml:"sheet_name" mapstructure:"sheet_name"`

	// PageSize is the PDF page size (Letter or A4).
	PageSize PageSize `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// FontFile, when set, is a TrueType font embedded in PDF output so that
	// text outside the cp1252 range renders exactly.
	FontFile string `json:"font_file,omitempty" yaml:"font_file,omitempty" mapstructure:"font_file"`
}

// OutputConfig holds where the pipeline writes its artifacts.
type OutputConfig struct {
	// Dir is the directory for derived output paths.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Path is an explicit report path. Only valid for a single input.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`

	// KMLPath is an explicit path for the extracted KML. Empty derives it
	// from the report path.
	KMLPath string `json:"kml_path,omitempty" yaml:"kml_path,omitempty" mapstructure:"kml_path"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Render     RenderConfig     `json:"render" yaml:"render" mapstructure:"render"`
	Output     OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
}
