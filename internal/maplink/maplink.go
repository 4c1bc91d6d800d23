// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package maplink derives web map URLs from KML coordinate strings.
package maplink

import (
	"fmt"
	"strings"

	"github.com/pdiddy/kmz-report/pkg/types"
)

const (
	// GoogleEarth opens the point in Google Earth on the web.
	GoogleEarth = "https://earth.google.com/web/@{lat},{lon},10000a,100d"

	// GoogleMaps opens the point in Google Maps.
	GoogleMaps = "https://www.google.com/maps?q={lat},{lon}"

	latPlaceholder = "{lat}"
	lonPlaceholder = "{lon}"
)

// Template is a URL template with {lat} and {lon} placeholders.
type Template string

// NewTemplate validates that s holds both placeholders.
func NewTemplate(s string) (Template, error) {
	if !strings.Contains(s, latPlaceholder) || !strings.Contains(s, lonPlaceholder) {
		return "", fmt.Errorf("link template %q must contain %s and %s", s, latPlaceholder, lonPlaceholder)
	}
	return Template(s), nil
}

// Split returns the longitude and latitude components of a KML coordinate
// string. ok is false when fewer than two comma-separated components exist.
// Components are trimmed but not validated as numbers.
func Split(coords string) (lon, lat string, ok bool) {
	parts := strings.Split(coords, ",")
	if len(parts) < 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// Link builds the map link for coords. An empty coordinate string yields
// types.DefaultValue and a string with fewer than two components yields
// types.InvalidCoordinates.
func (t Template) Link(coords string) string {
	if coords == "" {
		return types.DefaultValue
	}
	lon, lat, ok := Split(coords)
	if !ok {
		return types.InvalidCoordinates
	}
	r := strings.NewReplacer(latPlaceholder, lat, lonPlaceholder, lon)
	return r.Replace(string(t))
}

// IsURL reports whether a value returned by Link is an actual link rather
// than the default or sentinel value.
func IsURL(link string) bool {
	return link != types.DefaultValue && link != types.InvalidCoordinates
}
