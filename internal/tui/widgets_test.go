package tui

import (
	"testing"

	"github.com/Hubcapp/qdirstat/internal/tree"
)

func TestDisplayNameAnnotatesState(t *testing.T) {
	dir := tree.NewDir("sub")
	if got := displayName(dir); got != "sub/" {
		t.Fatalf("expected %q, got %q", "sub/", got)
	}

	errored := tree.NewFile("broken")
	errored.SetReadState(tree.Error)
	if got := displayName(errored); got != "broken [error]" {
		t.Fatalf("expected error annotation, got %q", got)
	}

	excluded := tree.NewFile("ignored")
	excluded.SetExcluded()
	if got := displayName(excluded); got != "ignored [excluded]" {
		t.Fatalf("expected excluded annotation, got %q", got)
	}

	mount := tree.NewDir("mnt")
	mount.SetMountPoint()
	if got := displayName(mount); got != "mnt/ [mount]" {
		t.Fatalf("expected mount annotation, got %q", got)
	}
}

func TestNameColorReflectsNodeKind(t *testing.T) {
	theme := defaultTheme()

	dir := tree.NewDir("sub")
	if nameColor(&theme, dir) != theme.blue {
		t.Fatalf("expected directories colored blue")
	}

	errored := tree.NewFile("broken")
	errored.SetReadState(tree.Error)
	if nameColor(&theme, errored) != theme.red {
		t.Fatalf("expected error nodes colored red")
	}

	excluded := tree.NewFile("ignored")
	excluded.SetExcluded()
	if nameColor(&theme, excluded) != theme.gray {
		t.Fatalf("expected excluded nodes colored gray")
	}

	plain := tree.NewFile("f")
	if nameColor(&theme, plain) != theme.fg {
		t.Fatalf("expected plain files colored fg")
	}
}

func TestReplaceHomeWithTilde(t *testing.T) {
	a := &App{userHomeDir: "/home/alice"}

	if got := a.replaceHomeWithTilde("/home/alice/projects"); got != "~/projects" {
		t.Fatalf("expected tilde-shortened path, got %q", got)
	}
	if got := a.replaceHomeWithTilde("/var/log"); got != "/var/log" {
		t.Fatalf("expected unrelated path unchanged, got %q", got)
	}

	a.userHomeDir = ""
	if got := a.replaceHomeWithTilde("/home/alice/projects"); got != "/home/alice/projects" {
		t.Fatalf("expected no substitution without a home dir, got %q", got)
	}
}

func TestDescendAndAscendTrackNavStack(t *testing.T) {
	a := NewApp("/tmp", nil)
	t.Cleanup(func() { a.Stop() })

	root := tree.NewDir("/tmp")
	child := tree.NewDir("child")
	root.InsertChild(child)

	a.current = root
	a.curPath = "/tmp"
	a.buildTable()
	a.table.Select(0, 0)

	a.descend()
	if a.current != child {
		t.Fatalf("expected descend to move into child")
	}
	if a.curPath != "/tmp/child" {
		t.Fatalf("expected curPath updated to /tmp/child, got %q", a.curPath)
	}
	if len(a.navStack) != 1 {
		t.Fatalf("expected one frame pushed onto nav stack, got %d", len(a.navStack))
	}

	a.ascend()
	if a.current != root {
		t.Fatalf("expected ascend to return to root")
	}
	if a.curPath != "/tmp" {
		t.Fatalf("expected curPath restored to /tmp, got %q", a.curPath)
	}
	if len(a.navStack) != 0 {
		t.Fatalf("expected nav stack drained after ascend, got %d", len(a.navStack))
	}
}

func TestAscendOnEmptyStackIsNoOp(t *testing.T) {
	a := NewApp("/tmp", nil)
	t.Cleanup(func() { a.Stop() })

	root := tree.NewDir("/tmp")
	a.current = root
	a.curPath = "/tmp"

	a.ascend()
	if a.current != root || a.curPath != "/tmp" {
		t.Fatalf("expected ascend with empty nav stack to be a no-op")
	}
}
