// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kml reads Placemark records from a KML 2.2 document.
//
// The document is parsed into an element tree and walked depth-first, so
// records come back in document order regardless of how deeply Folders and
// Documents nest them. Only elements in the KML 2.2 namespace match.
package kml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/pdiddy/kmz-report/pkg/types"
)

// Namespace is the KML 2.2 namespace URI.
const Namespace = "http://www.opengis.net/kml/2.2"

const (
	tagPlacemark   = "Placemark"
	tagName        = "name"
	tagDescription = "description"
	tagCoordinates = "coordinates"
)

// ErrMalformedKML is returned when the document is not well-formed XML or
// does not have exactly one root element.
var ErrMalformedKML = errors.New("malformed KML document")

// ParseFile reads the KML document at path and returns its placemarks.
func ParseFile(path string) ([]types.Placemark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening KML file: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Parse reads a KML document from r and returns one record per Placemark
// element, in document order.
func Parse(r io.Reader) ([]types.Placemark, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedKML, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedKML)
	}
	if n := len(doc.ChildElements()); n > 1 {
		return nil, fmt.Errorf("%w: %d root elements", ErrMalformedKML, n)
	}

	var placemarks []*etree.Element
	collect(root, tagPlacemark, &placemarks)

	records := make([]types.Placemark, len(placemarks))
	for i, pm := range placemarks {
		records[i] = types.Placemark{
			Name:        fieldText(child(pm, tagName)),
			Description: fieldText(child(pm, tagDescription)),
			Coordinates: coordinateText(descendant(pm, tagCoordinates)),
		}
	}
	return records, nil
}

func isKML(e *etree.Element, local string) bool {
	return e.Tag == local && e.NamespaceURI() == Namespace
}

// collect appends every KML descendant of e named local, in pre-order.
func collect(e *etree.Element, local string, out *[]*etree.Element) {
	for _, c := range e.ChildElements() {
		if isKML(c, local) {
			*out = append(*out, c)
		}
		collect(c, local, out)
	}
}

// child returns the first direct KML child of e named local.
func child(e *etree.Element, local string) *etree.Element {
	for _, c := range e.ChildElements() {
		if isKML(c, local) {
			return c
		}
	}
	return nil
}

// descendant returns the first KML descendant of e named local, in document
// order.
func descendant(e *etree.Element, local string) *etree.Element {
	for _, c := range e.ChildElements() {
		if isKML(c, local) {
			return c
		}
		if d := descendant(c, local); d != nil {
			return d
		}
	}
	return nil
}

func fieldText(e *etree.Element) string {
	if e == nil {
		return types.DefaultValue
	}
	text := strings.TrimSpace(e.Text())
	if text == "" {
		return types.DefaultValue
	}
	return text
}

func coordinateText(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Text())
}
