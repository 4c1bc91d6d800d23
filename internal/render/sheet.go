// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/kmz-report/internal/maplink"
	"github.com/pdiddy/kmz-report/pkg/types"
)

const (
	headerName        = "Name"
	headerDescription = "Description"
	headerCoordinates = "Coordinates"
	headerLink        = "Coordinates (Google Earth Link)"

	// Column widths of the linked variant, in characters.
	widthName        = 20
	widthDescription = 50
	widthLink        = 50
)

// Sheet renders records as an XLSX workbook with a header row and one row
// per record. The plain variant writes the raw coordinate string; the linked
// variant writes a map link, sizes the columns and wraps descriptions.
type Sheet struct {
	linked    bool
	template  maplink.Template
	sheetName string
	title     string
}

// NewSheet returns the plain spreadsheet renderer.
func NewSheet(cfg types.RenderConfig) (*Sheet, error) {
	return &Sheet{
		sheetName: sheetNameOf(cfg),
		title:     titleOf(cfg),
	}, nil
}

// NewLinkedSheet returns the spreadsheet renderer that replaces coordinates
// with a map link. Without a configured template it links to Google Earth.
func NewLinkedSheet(cfg types.RenderConfig) (*Sheet, error) {
	tpl, err := linkTemplate(cfg, maplink.GoogleEarth)
	if err != nil {
		return nil, err
	}
	return &Sheet{
		linked:    true,
		template:  tpl,
		sheetName: sheetNameOf(cfg),
		title:     titleOf(cfg),
	}, nil
}

func sheetNameOf(cfg types.RenderConfig) string {
	if cfg.SheetName == "" {
		return DefaultSheetName
	}
	return cfg.SheetName
}

// Format implements Renderer.
func (s *Sheet) Format() types.Format {
	if s.linked {
		return types.FormatXLSXLinked
	}
	return types.FormatXLSX
}

// Render implements Renderer.
func (s *Sheet) Render(records []types.Placemark, outPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := s.fill(f, records); err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}

	return writeAtomic(outPath, func(tmpPath string) error {
		out, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		if err := f.Write(out); err != nil {
			out.Close()
			return fmt.Errorf("saving workbook: %w", err)
		}
		return out.Close()
	})
}

func (s *Sheet) fill(f *excelize.File, records []types.Placemark) error {
	sheet := s.sheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   s.title,
		Creator: creator,
	}); err != nil {
		return err
	}

	third := headerCoordinates
	if s.linked {
		third = headerLink
		if err := s.layout(f); err != nil {
			return err
		}
	}

	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{headerName, headerDescription, third}); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", bold); err != nil {
		return err
	}

	for i, r := range records {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}

		value := r.Coordinates
		if s.linked {
			value = s.template.Link(r.Coordinates)
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{r.Name, r.Description, value}); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}

		if s.linked && maplink.IsURL(value) {
			linkCell, err := excelize.CoordinatesToCellName(3, row)
			if err != nil {
				return err
			}
			if err := f.SetCellHyperLink(sheet, linkCell, value, "External"); err != nil {
				return fmt.Errorf("row %d: %w", row, err)
			}
		}
	}
	return nil
}

// layout sets the column widths, wraps the description column and freezes
// the header row.
func (s *Sheet) layout(f *excelize.File) error {
	sheet := s.sheetName
	for _, c := range []struct {
		col   string
		width float64
	}{
		{"A", widthName},
		{"B", widthDescription},
		{"C", widthLink},
	} {
		if err := f.SetColWidth(sheet, c.col, c.col, c.width); err != nil {
			return err
		}
	}

	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	if err := f.SetColStyle(sheet, "B", wrap); err != nil {
		return err
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
