package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad_RowsBecomeUnits(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "facilities.csv",
		"facility,count\ntheaters,9\ncanteens,2\n")

	units, err := Load([]string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}

	if units[0].Text != "facility: theaters\ncount: 9" {
		t.Errorf("unexpected first unit text: %q", units[0].Text)
	}
	if units[0].Source != path {
		t.Errorf("unexpected provenance: %q", units[0].Source)
	}
	if units[0].Row != 1 || units[1].Row != 2 {
		t.Errorf("unexpected row numbers: %d, %d", units[0].Row, units[1].Row)
	}
}

func TestLoad_OrderAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.csv", "q,a\nfirst question,first answer\n")
	second := writeFile(t, dir, "b.csv", "q,a\nsecond question,second answer\n")

	units, err := Load([]string{first, second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if units[0].Source != first || units[1].Source != second {
		t.Errorf("units out of path order: %q, %q", units[0].Source, units[1].Source)
	}
}

func TestLoad_UnreadablePathFails(t *testing.T) {
	_, err := Load([]string{filepath.Join(t.TempDir(), "missing.csv")})
	if err == nil {
		t.Error("expected error for unreadable path")
	}
}

func TestLoad_HeaderOnlyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.csv", "q,a\n")

	units, err := Load([]string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 0 {
		t.Errorf("expected no units for header-only file, got %d", len(units))
	}
}

func TestLoad_RaggedRow(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ragged.csv", "a,b\nx,y,z\n")

	units, err := Load([]string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	// The extra column has no header label.
	if units[0].Text != "a: x\nb: y\nz" {
		t.Errorf("unexpected text for ragged row: %q", units[0].Text)
	}
}
