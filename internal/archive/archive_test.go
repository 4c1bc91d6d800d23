// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kmz-report/pkg/types"
)

type zipEntry struct {
	name string
	data string
}

// writeKMZ builds a zip archive with the entries in the given order.
func writeKMZ(t *testing.T, dir string, entries []zipEntry) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, "input.kmz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

const sampleKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document><Placemark><name>A</name></Placemark></Document></kml>`

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		entries     []zipEntry
		policy      types.MultipleKMLPolicy
		wantEntry   string
		wantData    string
		wantIgnored []string
		wantErr     error
	}{
		{
			name:      "single kml entry",
			entries:   []zipEntry{{"doc.kml", sampleKML}},
			wantEntry: "doc.kml",
			wantData:  sampleKML,
		},
		{
			name: "skips non-kml entries before the document",
			entries: []zipEntry{
				{"files/icon.png", "\x89PNG"},
				{"files/readme.txt", "hello"},
				{"doc.kml", sampleKML},
			},
			wantEntry: "doc.kml",
			wantData:  sampleKML,
		},
		{
			name:      "nested kml entry",
			entries:   []zipEntry{{"layers/roads.kml", sampleKML}},
			wantEntry: "layers/roads.kml",
			wantData:  sampleKML,
		},
		{
			name: "first kml wins by default",
			entries: []zipEntry{
				{"b.kml", "first"},
				{"a.kml", "second"},
				{"c.kml", "third"},
			},
			wantEntry:   "b.kml",
			wantData:    "first",
			wantIgnored: []string{"a.kml", "c.kml"},
		},
		{
			name: "explicit first policy",
			entries: []zipEntry{
				{"one.kml", "first"},
				{"two.kml", "second"},
			},
			policy:      types.MultipleKMLFirst,
			wantEntry:   "one.kml",
			wantData:    "first",
			wantIgnored: []string{"two.kml"},
		},
		{
			name: "error policy rejects several kml entries",
			entries: []zipEntry{
				{"one.kml", "first"},
				{"two.kml", "second"},
			},
			policy:  types.MultipleKMLError,
			wantErr: ErrAmbiguousKML,
		},
		{
			name:      "error policy accepts a single kml entry",
			entries:   []zipEntry{{"doc.kml", sampleKML}},
			policy:    types.MultipleKMLError,
			wantEntry: "doc.kml",
			wantData:  sampleKML,
		},
		{
			name:    "no kml entry",
			entries: []zipEntry{{"doc.txt", "nothing"}, {"doc.KMLX", "nope"}},
			wantErr: ErrMissingKML,
		},
		{
			name:    "empty archive",
			wantErr: ErrMissingKML,
		},
		{
			name:    "directory named like kml is ignored",
			entries: []zipEntry{{"folder.kml/", ""}},
			wantErr: ErrMissingKML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			kmzPath := writeKMZ(t, dir, tt.entries)
			outPath := filepath.Join(dir, "out", "extracted.kml")

			entry, err := Extract(kmzPath, outPath, types.ExtractionConfig{MultipleKML: tt.policy})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				_, statErr := os.Stat(outPath)
				assert.True(t, os.IsNotExist(statErr), "no output file should be created on failure")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEntry, entry.Name)
			assert.Equal(t, int64(len(tt.wantData)), entry.Size)
			assert.Equal(t, tt.wantIgnored, entry.Ignored)

			got, err := os.ReadFile(outPath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, string(got))
		})
	}
}

func TestExtractIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	kmzPath := writeKMZ(t, dir, []zipEntry{{"doc.kml", sampleKML}})

	first := filepath.Join(dir, "first.kml")
	second := filepath.Join(dir, "second.kml")
	_, err := Extract(kmzPath, first, types.ExtractionConfig{})
	require.NoError(t, err)
	_, err = Extract(kmzPath, second, types.ExtractionConfig{})
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "extractions should be byte-identical")
}

func TestExtractOverwritesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	kmzPath := writeKMZ(t, dir, []zipEntry{{"doc.kml", sampleKML}})
	outPath := filepath.Join(dir, "doc.kml")
	require.NoError(t, os.WriteFile(outPath, []byte("stale content that is longer than the new one"+sampleKML), 0o644))

	_, err := Extract(kmzPath, outPath, types.ExtractionConfig{})
	require.NoError(t, err)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, sampleKML, string(got))
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing archive", func(t *testing.T) {
		_, err := Extract(filepath.Join(dir, "nope.kmz"), filepath.Join(dir, "out.kml"), types.ExtractionConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening KMZ archive")
	})

	t.Run("not a zip file", func(t *testing.T) {
		path := filepath.Join(dir, "plain.kmz")
		require.NoError(t, os.WriteFile(path, []byte(sampleKML), 0o644))
		_, err := Extract(path, filepath.Join(dir, "out.kml"), types.ExtractionConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening KMZ archive")
	})

	t.Run("unknown policy", func(t *testing.T) {
		kmzPath := writeKMZ(t, t.TempDir(), []zipEntry{{"doc.kml", sampleKML}})
		_, err := Extract(kmzPath, filepath.Join(dir, "out.kml"), types.ExtractionConfig{MultipleKML: "last"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown multiple_kml policy")
	})
}

func TestExtractRefusesToOverwriteArchive(t *testing.T) {
	dir := t.TempDir()
	kmzPath := writeKMZ(t, dir, []zipEntry{{"doc.kml", sampleKML}})
	kmlNamed := filepath.Join(dir, "site.kml")
	require.NoError(t, os.Rename(kmzPath, kmlNamed))
	before, err := os.ReadFile(kmlNamed)
	require.NoError(t, err)

	for _, out := range []string{
		kmlNamed,
		filepath.Join(dir, ".", "site.kml"),
	} {
		_, err := Extract(kmlNamed, out, types.ExtractionConfig{})
		require.ErrorIs(t, err, ErrOutputIsArchive)
	}

	t.Run("relative path to the same file", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(wd) })
		_, err = Extract(kmlNamed, "site.kml", types.ExtractionConfig{})
		require.ErrorIs(t, err, ErrOutputIsArchive)
	})

	after, err := os.ReadFile(kmlNamed)
	require.NoError(t, err)
	assert.Equal(t, before, after, "archive must be left intact")
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	kmzPath := writeKMZ(t, dir, []zipEntry{
		{"z.kml", "z"},
		{"images/a.png", "png"},
		{"a/doc.kml", "doc"},
	})

	names, err := List(kmzPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"z.kml", "a/doc.kml"}, names)
}
