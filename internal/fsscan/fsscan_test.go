package fsscan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadDirStatFindsAllEntries(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.txt", "b.txt", "sub"}
	for _, n := range names[:2] {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadDirStat(dir)
	if err != nil {
		t.Fatalf("ReadDirStat: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	found := map[string]bool{}
	for _, e := range entries {
		found[e.Name] = true
		if e.Err != nil {
			t.Fatalf("unexpected stat error for %s: %v", e.Name, e.Err)
		}
	}
	for _, n := range names {
		if !found[n] {
			t.Fatalf("missing entry %s", n)
		}
	}
}

func TestReadDirStatIdentifiesDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "f"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadDirStat(dir)
	if err != nil {
		t.Fatalf("ReadDirStat: %v", err)
	}
	for _, e := range entries {
		if e.Name == "sub" && !e.Stat.IsDir() {
			t.Fatalf("expected sub to be a directory")
		}
		if e.Name == "f" && e.Stat.IsDir() {
			t.Fatalf("expected f to be a file")
		}
	}
}

func TestCheckAccess(t *testing.T) {
	dir := t.TempDir()
	if err := CheckAccess(dir); err != nil {
		t.Fatalf("expected access to tempdir to succeed: %v", err)
	}
}
