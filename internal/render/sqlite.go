// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/kmz-report/internal/maplink"
	"github.com/pdiddy/kmz-report/pkg/types"
)

const createPlacemarks = `CREATE TABLE placemarks (
	position INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	coordinates TEXT NOT NULL,
	map_link TEXT NOT NULL
)`

// SQLite renders records into a placemarks table of a new SQLite database.
// The position column keeps document order, starting at 1.
type SQLite struct {
	template maplink.Template
}

// NewSQLite returns the SQLite renderer. Without a configured template the
// map_link column links to Google Maps.
func NewSQLite(cfg types.RenderConfig) (*SQLite, error) {
	tpl, err := linkTemplate(cfg, maplink.GoogleMaps)
	if err != nil {
		return nil, err
	}
	return &SQLite{template: tpl}, nil
}

// Format implements Renderer.
func (s *SQLite) Format() types.Format { return types.FormatSQLite }

// Render implements Renderer.
func (s *SQLite) Render(records []types.Placemark, outPath string) error {
	return writeAtomic(outPath, func(tmpPath string) error {
		db, err := sql.Open("sqlite3", tmpPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		if err := s.insert(db, records); err != nil {
			db.Close()
			return err
		}
		return db.Close()
	})
}

func (s *SQLite) insert(db *sql.DB, records []types.Placemark) error {
	if _, err := db.Exec(createPlacemarks); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO placemarks (position, name, description, coordinates, map_link) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i+1, r.Name, r.Description, r.Coordinates, s.template.Link(r.Coordinates)); err != nil {
			return fmt.Errorf("inserting placemark %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing placemarks: %w", err)
	}
	return nil
}
