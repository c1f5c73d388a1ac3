package cache

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

// plainCache implements ResultCache without Entries.
type plainCache struct{ data map[string]string }

func (p *plainCache) Get(key string) (string, bool) {
	v, ok := p.data[key]
	return v, ok
}

func (p *plainCache) Set(key string, value string) error {
	p.data[key] = value
	return nil
}

func TestExporter_Export(t *testing.T) {
	c := NewInMemoryCache(3600)
	c.Set("key2", "fr")
	c.Set("key1", "en")

	exporter := NewExporter(c)
	var buf bytes.Buffer

	err := exporter.Export(&buf, map[string]string{"revision": "0.1.0"})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export ExportFormat
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}

	if export.Version != FormatVersion {
		t.Errorf("Expected version %s, got %s", FormatVersion, export.Version)
	}

	if len(export.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(export.Entries))
	}

	if export.Entries[0].Key != "key1" || export.Entries[1].Key != "key2" {
		t.Errorf("Entries should be sorted by key, got %v", export.Entries)
	}

	if export.Metadata["revision"] != "0.1.0" {
		t.Errorf("Expected metadata revision=0.1.0, got %v", export.Metadata)
	}
}

func TestExporter_Unsupported(t *testing.T) {
	exporter := NewExporter(&plainCache{data: map[string]string{}})

	var buf bytes.Buffer
	if err := exporter.Export(&buf, nil); err == nil {
		t.Error("Expected error for a cache without Entries")
	}
}

func TestImporter_Import(t *testing.T) {
	jsonData := `{
		"version": "1.0",
		"exported_at": "2024-01-01T00:00:00Z",
		"entries": [
			{"key": "key1", "value": "en"},
			{"key": "key2", "value": "fr"},
			{"key": "", "value": "de"}
		],
		"metadata": {"revision": "0.1.0"}
	}`

	c := NewInMemoryCache(3600)
	importer := NewImporter(c)

	result, err := importer.Import(strings.NewReader(jsonData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}

	if result.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", result.Failed)
	}

	if val, ok := c.Get("key1"); !ok || val != "en" {
		t.Errorf("key1 not found or wrong value: %s", val)
	}

	if val, ok := c.Get("key2"); !ok || val != "fr" {
		t.Errorf("key2 not found or wrong value: %s", val)
	}
}

func TestImporter_WrongVersion(t *testing.T) {
	c := NewInMemoryCache(3600)
	importer := NewImporter(c)

	_, err := importer.Import(strings.NewReader(`{"version": "9.9", "entries": []}`))
	if err == nil {
		t.Error("Expected error for unsupported version")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := NewInMemoryCache(3600)
	src.Set("hash1:0.1.0", "ru")
	src.Set("hash2:0.1.0", "uk")

	exporter := NewExporter(src)
	var buf bytes.Buffer
	if err := exporter.Export(&buf, nil); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst := NewInMemoryCache(3600)
	importer := NewImporter(dst)
	result, err := importer.Import(&buf)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}

	if val, ok := dst.Get("hash1:0.1.0"); !ok || val != "ru" {
		t.Errorf("hash1:0.1.0 not found or wrong value")
	}
}

func TestExportImport_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")

	src := NewInMemoryCache(0)
	src.Set("k", "ko")
	if err := NewExporter(src).ExportToFile(path, nil); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	dst := NewInMemoryCache(0)
	result, err := NewImporter(dst).ImportFromFile(path)
	if err != nil {
		t.Fatalf("ImportFromFile failed: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("Expected 1 imported, got %d", result.Imported)
	}
	if val, _ := dst.Get("k"); val != "ko" {
		t.Errorf("Expected 'ko', got %q", val)
	}
}

func TestExporter_EmptyCache(t *testing.T) {
	c := NewInMemoryCache(3600)
	exporter := NewExporter(c)

	var buf bytes.Buffer
	err := exporter.Export(&buf, nil)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export ExportFormat
	json.Unmarshal(buf.Bytes(), &export)

	if len(export.Entries) != 0 {
		t.Errorf("Expected 0 entries for empty cache, got %d", len(export.Entries))
	}
}

func TestImporter_InvalidJSON(t *testing.T) {
	c := NewInMemoryCache(3600)
	importer := NewImporter(c)

	_, err := importer.Import(strings.NewReader("invalid json"))
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
