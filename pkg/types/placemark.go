// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// DefaultValue replaces a missing or empty placemark field. Every
	// renderer uses the same value.
	DefaultValue = "N/A"

	// InvalidCoordinates is the map link value for a coordinate string with
	// fewer than two comma-separated components.
	InvalidCoordinates = "Invalid coordinates"
)

// Placemark holds the fields read from a single KML Placemark element.
type Placemark struct {
	// Name is the placemark name, or DefaultValue when absent.
	Name string `json:"name" yaml:"name"`

	// Description is the placemark description, or DefaultValue when absent.
	Description string `json:"description" yaml:"description"`

	// Coordinates is the raw, trimmed text of the first nested coordinates
	// element ("lon,lat[,alt]"). Empty when the placemark has none.
	Coordinates string `json:"coordinates" yaml:"coordinates"`
}

// HasCoordinates reports whether the placemark carried a coordinates element
// with non-empty text.
func (p Placemark) HasCoordinates() bool {
	return p.Coordinates != ""
}
