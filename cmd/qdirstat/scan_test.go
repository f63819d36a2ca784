package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Hubcapp/qdirstat/internal/tree"
)

func TestCountFilesCountsOnlyLeaves(t *testing.T) {
	root := tree.NewDir("root")
	sub := tree.NewDir("sub")
	root.InsertChild(sub)
	root.InsertChild(tree.NewFile("a"))
	sub.InsertChild(tree.NewFile("b"))
	sub.InsertChild(tree.NewFile("c"))

	if got := countFiles(root); got != 3 {
		t.Fatalf("expected 3 files, got %d", got)
	}
}

func TestRulesFromPatternsBuildsBaseNameRules(t *testing.T) {
	if r := rulesFromPatterns(nil); r != nil {
		t.Fatalf("expected nil rules for empty patterns, got %v", r)
	}

	r := rulesFromPatterns([]string{"node_modules", "*.bak"})
	if r == nil {
		t.Fatalf("expected non-nil rules")
	}
	if !r.Match("/x/node_modules", "node_modules") {
		t.Fatalf("expected node_modules pattern to match")
	}
	if !r.MatchDirectChildren([]string{"core.bak"}) {
		t.Fatalf("expected *.bak pattern to match as a direct-child rule")
	}
}

func TestTempDirReturnsExistingDirectory(t *testing.T) {
	dir := tempDir()
	if dir == "" {
		t.Fatalf("expected a non-empty temp dir")
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Fatalf("expected %s to be an existing directory, err=%v", dir, err)
	}
}

func TestSettingsPathEndsInQdirstatSettings(t *testing.T) {
	path := settingsPath()
	if filepath.Base(path) != "settings.toml" {
		t.Fatalf("expected settings.toml basename, got %s", path)
	}
}
