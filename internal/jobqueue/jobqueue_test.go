package jobqueue

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Hubcapp/qdirstat/internal/cachefile"
	"github.com/Hubcapp/qdirstat/internal/excluderules"
	"github.com/Hubcapp/qdirstat/internal/pkgmgr"
	"github.com/Hubcapp/qdirstat/internal/tree"
)

func findNode(n *tree.Node, name string) *tree.Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestEmptyDirectoryScan(t *testing.T) {
	dir := t.TempDir()

	tr := tree.New(dir)
	q := New(tr)

	job, err := NewSeedLocalDirJob(tr, dir, Config{})
	if err != nil {
		t.Fatalf("NewSeedLocalDirJob: %v", err)
	}
	q.Enqueue(job)
	q.RunLoop(context.Background())

	if !q.Idle() {
		t.Fatalf("expected queue idle after run")
	}
	scanned := job.Dir()
	if scanned.State != tree.Finished {
		t.Fatalf("expected Finished, got %v", scanned.State)
	}
	if len(scanned.Children) != 0 {
		t.Fatalf("expected 0 children, got %d", len(scanned.Children))
	}
}

func TestScanBuildsExpectedTree(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "a"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a", "f1"), make([]byte, 42), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}

	tr := tree.New(dir)
	q := New(tr)

	job, err := NewSeedLocalDirJob(tr, dir, Config{})
	if err != nil {
		t.Fatalf("NewSeedLocalDirJob: %v", err)
	}
	q.Enqueue(job)
	q.RunLoop(context.Background())

	root := job.Dir()
	if root.State != tree.Finished {
		t.Fatalf("expected root Finished, got %v", root.State)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}

	a := findNode(root, "a")
	b := findNode(root, "b")
	if a == nil || b == nil {
		t.Fatalf("expected children a and b")
	}
	if b.Size != 100 {
		t.Fatalf("expected b size 100, got %d", b.Size)
	}
	if len(a.Children) != 1 || a.Children[0].Name != "f1" {
		t.Fatalf("expected a to have child f1")
	}
	if root.Size < 100 {
		t.Fatalf("expected root total size >= 100, got %d", root.Size)
	}
}

func TestExcludeRuleSkipsSubdirRecursion(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "node_modules"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "node_modules", "x"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tr := tree.New(dir)
	q := New(tr)
	cfg := Config{Rules: excluderules.New(excluderules.Rule{Pattern: "node_modules"})}

	job, err := NewSeedLocalDirJob(tr, dir, cfg)
	if err != nil {
		t.Fatalf("NewSeedLocalDirJob: %v", err)
	}
	q.Enqueue(job)
	q.RunLoop(context.Background())

	nm := findNode(job.Dir(), "node_modules")
	if nm == nil {
		t.Fatalf("expected node_modules to appear")
	}
	if nm.State != tree.OnRequestOnly || !nm.Excluded {
		t.Fatalf("expected node_modules excluded+OnRequestOnly, got state=%v excluded=%v", nm.State, nm.Excluded)
	}
	if len(nm.Children) != 0 {
		t.Fatalf("expected no children recursed into excluded dir")
	}
}

func TestLateExcludeOnFileChildren(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "core.bak"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tr := tree.New(dir)
	q := New(tr)
	cfg := Config{Rules: excluderules.New(excluderules.Rule{Pattern: "*.bak", AppliesToFileChildren: true})}

	job, err := NewSeedLocalDirJob(tr, dir, cfg)
	if err != nil {
		t.Fatalf("NewSeedLocalDirJob: %v", err)
	}
	q.Enqueue(job)
	q.RunLoop(context.Background())

	root := job.Dir()
	if root.State != tree.Finished || root.Excluded {
		t.Fatalf("expected scan root never subject to late-exclude-by-file-children, got state=%v excluded=%v", root.State, root.Excluded)
	}

	sub := findNode(root, "sub")
	if sub == nil {
		t.Fatalf("expected sub to appear")
	}
	if sub.State != tree.OnRequestOnly || !sub.Excluded {
		t.Fatalf("expected sub late-excluded to OnRequestOnly, got state=%v excluded=%v", sub.State, sub.Excluded)
	}
	if len(sub.Children) != 0 {
		t.Fatalf("expected zero surviving children under sub, got %d", len(sub.Children))
	}
}

func TestCachePreemptionAtTopLevel(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "q"), make([]byte, 7), 0o644); err != nil {
		t.Fatal(err)
	}

	// Build a snapshot claiming firstDir == dir, with a single child "fake"
	// of a size the real scan could never produce, so whichever content
	// ends up in the tree tells us which path was taken.
	snapshotRoot := tree.NewDir(dir)
	fake := tree.NewFile("fake")
	fake.Size = 999
	snapshotRoot.InsertChild(fake)
	snapshotRoot.FinalizeLocal()

	w, err := cachefile.NewWriter(filepath.Join(dir, cachefile.DefaultCacheName))
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteTree(snapshotRoot, dir); err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	tr := tree.New(dir)
	q := New(tr)

	job, err := NewSeedLocalDirJob(tr, dir, Config{})
	if err != nil {
		t.Fatalf("NewSeedLocalDirJob: %v", err)
	}
	q.Enqueue(job)
	q.RunLoop(context.Background())

	if !q.Idle() {
		t.Fatalf("expected queue idle after run")
	}

	rebuiltRoot := findNode(tr.Root, dir)
	if rebuiltRoot == nil {
		t.Fatalf("expected rebuilt root under tree after cache preemption")
	}
	if len(rebuiltRoot.Children) != 1 || rebuiltRoot.Children[0].Name != "fake" {
		t.Fatalf("expected cache content (1 child named fake) to win, got %d children", len(rebuiltRoot.Children))
	}
	if rebuiltRoot.Children[0].Size != 999 {
		t.Fatalf("expected fake size 999 from cache, got %d", rebuiltRoot.Children[0].Size)
	}
}

func TestAbortMarksBoundDirectoriesAborted(t *testing.T) {
	dir := t.TempDir()
	tr := tree.New(dir)
	q := New(tr)

	job, err := NewSeedLocalDirJob(tr, dir, Config{})
	if err != nil {
		t.Fatalf("NewSeedLocalDirJob: %v", err)
	}
	q.Enqueue(job)
	q.Abort()

	if job.Dir().State != tree.Aborted {
		t.Fatalf("expected Aborted, got %v", job.Dir().State)
	}
	if !q.Idle() {
		t.Fatalf("expected queue idle after abort")
	}
}

type listManager struct {
	files string
}

func (m *listManager) Name() string    { return "test" }
func (m *listManager) Available() bool { return true }
func (m *listManager) InstalledPackages() ([]pkgmgr.PkgInfo, error) {
	return []pkgmgr.PkgInfo{{BaseName: "demo", Version: "1.0", Arch: "amd64", Manager: "test"}}, nil
}
func (m *listManager) FileListCommand(pkg pkgmgr.PkgInfo) (string, []string) {
	return "cat", []string{m.files}
}
func (m *listManager) ParseFileList(output string) []string {
	var out []string
	for _, l := range splitLines(output) {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func TestPkgReaderBuildsPackageSubtree(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "usr", "bin"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "usr", "bin", "x"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	listFile := filepath.Join(dir, "filelist.txt")
	if err := os.WriteFile(listFile, []byte(filepath.Join(dir, "usr", "bin", "x")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tr := tree.New("/")
	q := New(tr)

	reader := NewPkgReader(tr, q, &listManager{files: listFile}, 2)
	pkgRoot, err := reader.Start(SelectAll)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	q.RunLoop(context.Background())

	if !q.Idle() {
		t.Fatalf("expected queue idle after run")
	}
	if len(pkgRoot.Children) != 1 {
		t.Fatalf("expected 1 package node, got %d", len(pkgRoot.Children))
	}
	demo := pkgRoot.Children[0]
	if demo.Name != "demo" {
		t.Fatalf("expected display name demo, got %s", demo.Name)
	}
	if demo.State != tree.Finished {
		t.Fatalf("expected package Finished, got %v", demo.State)
	}

	// addFile mirrors every component of the listed absolute path, so the
	// package subtree starts with the temp dir's own components.
	base := demo
	for _, seg := range strings.Split(strings.Trim(dir, "/"), "/") {
		base = findNode(base, seg)
		if base == nil {
			t.Fatalf("expected %s node under package", seg)
		}
	}

	usr := findNode(base, "usr")
	if usr == nil {
		t.Fatalf("expected usr node under package")
	}
	bin := findNode(usr, "bin")
	if bin == nil {
		t.Fatalf("expected usr/bin node under package")
	}
	if findNode(bin, "x") == nil {
		t.Fatalf("expected usr/bin/x file under package")
	}
}

func TestPkgJobErrorExitMarksPackageError(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}

	dir := t.TempDir()
	tr := tree.New("/")
	q := New(tr)

	m := &failingManager{}
	reader := NewPkgReader(tr, q, m, 1)
	pkgRoot, err := reader.Start(SelectAll)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	_ = dir

	q.RunLoop(context.Background())

	if len(pkgRoot.Children) != 1 {
		t.Fatalf("expected 1 package node, got %d", len(pkgRoot.Children))
	}
	if pkgRoot.Children[0].State != tree.Error {
		t.Fatalf("expected package Error, got %v", pkgRoot.Children[0].State)
	}
}

type failingManager struct{}

func (m *failingManager) Name() string    { return "fail" }
func (m *failingManager) Available() bool { return true }
func (m *failingManager) InstalledPackages() ([]pkgmgr.PkgInfo, error) {
	return []pkgmgr.PkgInfo{{BaseName: "broken", Version: "1.0", Arch: "amd64", Manager: "fail"}}, nil
}
func (m *failingManager) FileListCommand(pkg pkgmgr.PkgInfo) (string, []string) {
	return "false", nil
}
func (m *failingManager) ParseFileList(output string) []string { return nil }
