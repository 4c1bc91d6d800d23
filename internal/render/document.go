// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/kmz-report/internal/maplink"
	"github.com/pdiddy/kmz-report/pkg/types"
)

const (
	coreFont = "Helvetica"
	ttfFont  = "ReportFont"

	titleSize = 18
	bodySize  = 11

	// Heights and margins in millimetres.
	titleHeight = 9
	lineHeight  = 6
	blockGap    = 4
	margin      = 20

	googleMapsText = "View on Google Maps"
	mapText        = "Open map"
)

// Document renders records as a flowing PDF: a title followed by a labeled
// Name, Description and Coordinates block per record. The coordinates line
// is a clickable map link. Page breaks are automatic.
type Document struct {
	template maplink.Template
	linkText string
	title    string
	pageSize types.PageSize
	fontFile string
}

// NewDocument returns the PDF renderer. Without a configured template it
// links to Google Maps.
func NewDocument(cfg types.RenderConfig) (*Document, error) {
	tpl, err := linkTemplate(cfg, maplink.GoogleMaps)
	if err != nil {
		return nil, err
	}

	size := cfg.PageSize
	switch size {
	case "":
		size = types.PageLetter
	case types.PageLetter, types.PageA4:
	default:
		return nil, fmt.Errorf("unsupported page size %q: use Letter or A4", size)
	}

	text := mapText
	if tpl == maplink.GoogleMaps {
		text = googleMapsText
	}

	return &Document{
		template: tpl,
		linkText: text,
		title:    titleOf(cfg),
		pageSize: size,
		fontFile: cfg.FontFile,
	}, nil
}

// Format implements Renderer.
func (d *Document) Format() types.Format { return types.FormatPDF }

// Render implements Renderer.
func (d *Document) Render(records []types.Placemark, outPath string) error {
	pdf := fpdf.New("P", "mm", string(d.pageSize), "")
	pdf.SetTitle(d.title, true)
	pdf.SetCreator(creator, true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)

	family, tr, err := d.font(pdf)
	if err != nil {
		return err
	}
	pdf.AddPage()

	pdf.SetFont(family, "B", titleSize)
	pdf.MultiCell(0, titleHeight, tr(d.title), "", "C", false)
	pdf.Ln(blockGap * 2)

	for _, r := range records {
		d.field(pdf, family, tr, "Name: ", r.Name)
		d.field(pdf, family, tr, "Description: ", r.Description)
		d.coordinates(pdf, family, tr, r.Coordinates)
		pdf.Ln(blockGap)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building PDF: %w", err)
	}

	return writeAtomic(outPath, func(tmpPath string) error {
		if err := pdf.OutputFileAndClose(tmpPath); err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		return nil
	})
}

// font registers the body font. A configured TrueType file is embedded as a
// UTF-8 font; otherwise text is translated to cp1252 for the core Helvetica.
func (d *Document) font(pdf *fpdf.Fpdf) (string, func(string) string, error) {
	if d.fontFile == "" {
		return coreFont, pdf.UnicodeTranslatorFromDescriptor(""), nil
	}
	data, err := os.ReadFile(d.fontFile)
	if err != nil {
		return "", nil, fmt.Errorf("reading font file: %w", err)
	}
	pdf.AddUTF8FontFromBytes(ttfFont, "", data)
	pdf.AddUTF8FontFromBytes(ttfFont, "B", data)
	return ttfFont, func(s string) string { return s }, nil
}

func (d *Document) field(pdf *fpdf.Fpdf, family string, tr func(string) string, label, value string) {
	pdf.SetFont(family, "B", bodySize)
	pdf.Write(lineHeight, tr(label))
	pdf.SetFont(family, "", bodySize)
	pdf.Write(lineHeight, tr(value))
	pdf.Ln(lineHeight)
}

func (d *Document) coordinates(pdf *fpdf.Fpdf, family string, tr func(string) string, coords string) {
	pdf.SetFont(family, "B", bodySize)
	pdf.Write(lineHeight, tr("Coordinates: "))

	link := d.template.Link(coords)
	if maplink.IsURL(link) {
		pdf.SetTextColor(0, 0, 238)
		pdf.SetFont(family, "U", bodySize)
		pdf.WriteLinkString(lineHeight, tr(d.linkText), link)
		pdf.SetTextColor(0, 0, 0)
	} else {
		pdf.SetFont(family, "", bodySize)
		pdf.Write(lineHeight, tr(link))
	}
	pdf.Ln(lineHeight)
}
