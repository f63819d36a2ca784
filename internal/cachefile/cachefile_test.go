package cachefile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Hubcapp/qdirstat/internal/tree"
)

func buildSampleTree() *tree.Node {
	root := tree.NewDir("/t")
	root.MTime = time.Unix(1000, 0)

	a := tree.NewDir("a")
	a.MTime = time.Unix(1001, 0)
	a.State = tree.Finished
	f1 := tree.NewFile("f1")
	f1.Size = 42
	f1.MTime = time.Unix(1002, 0)
	a.InsertChild(f1)
	a.FinalizeLocal()

	b := tree.NewFile("b")
	b.Size = 100
	b.MTime = time.Unix(1003, 0)

	root.InsertChild(a)
	root.InsertChild(b)
	root.State = tree.Finished
	root.FinalizeLocal()

	return root
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, DefaultCacheName)

	orig := buildSampleTree()

	w, err := NewWriter(cachePath)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteTree(orig, "/t"); err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	parent := tree.NewDir("parent")
	r, err := NewReader(cachePath, parent, func(p, c *tree.Node) { p.InsertChild(c) })
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	if r.FirstDir() != "/t" {
		t.Fatalf("expected firstDir /t, got %q", r.FirstDir())
	}

	total := 0
	for !r.EOF() && r.OK() {
		n, err := r.Read(1000)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		total += n
		if n == 0 {
			break
		}
	}

	// root(/t) + a + f1 + b = 4 lines.
	if total != 4 {
		t.Fatalf("expected 4 entries processed, got %d", total)
	}

	if len(parent.Children) != 1 {
		t.Fatalf("expected 1 root child under parent, got %d", len(parent.Children))
	}
	rebuiltRoot := parent.Children[0]
	if len(rebuiltRoot.Children) != 2 {
		t.Fatalf("expected 2 children under rebuilt root, got %d", len(rebuiltRoot.Children))
	}

	var rebuiltA, rebuiltB *tree.Node
	for _, c := range rebuiltRoot.Children {
		switch c.Name {
		case "a":
			rebuiltA = c
		case "b":
			rebuiltB = c
		}
	}
	if rebuiltA == nil || rebuiltB == nil {
		t.Fatalf("expected children named a and b")
	}
	if len(rebuiltA.Children) != 1 || rebuiltA.Children[0].Name != "f1" {
		t.Fatalf("expected a to have child f1")
	}
	if rebuiltB.Size != 100 {
		t.Fatalf("expected b size 100, got %d", rebuiltB.Size)
	}
}

func TestRewindAfterPeekingFirstDir(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, DefaultCacheName)

	orig := buildSampleTree()
	w, _ := NewWriter(cachePath)
	w.WriteTree(orig, "/t")
	w.Close()

	parent := tree.NewDir("parent")
	r, err := NewReader(cachePath, parent, func(p, c *tree.Node) { p.InsertChild(c) })
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.FirstDir() != "/t" {
		t.Fatalf("expected /t, got %q", r.FirstDir())
	}

	if err := r.Rewind(); err != nil {
		t.Fatalf("Rewind: %v", err)
	}

	total := 0
	for !r.EOF() {
		n, err := r.Read(2)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		total += n
		if n == 0 {
			break
		}
	}
	if total != 4 {
		t.Fatalf("expected 4 entries after rewind, got %d", total)
	}
}
