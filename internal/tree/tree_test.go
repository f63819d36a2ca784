package tree

import "testing"

func TestInsertChildOrderingAndSize(t *testing.T) {
	tr := New("/t")
	a := NewDir("a")
	b := NewFile("b")
	b.Size = 100

	tr.ChildAdded(tr.Root, b)
	tr.ChildAdded(tr.Root, a)

	if len(tr.Root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(tr.Root.Children))
	}
	if tr.Root.Children[0] != b || tr.Root.Children[1] != a {
		t.Fatalf("children not in insertion order")
	}

	f1 := NewFile("f1")
	f1.Size = 50
	tr.ChildAdded(a, f1)
	a.SetReadState(Finished)
	tr.FinalizeLocalNotify(a)
	tr.FinalizeLocalNotify(tr.Root)

	if tr.Root.Size < 100 {
		t.Fatalf("expected root size >= 100, got %d", tr.Root.Size)
	}
}

func TestReadJobCounting(t *testing.T) {
	tr := New("/t")
	d := NewDir("d")
	tr.ChildAdded(tr.Root, d) // d is Queued: bumps root's counter

	if tr.Root.ReadJobCount() != 1 {
		t.Fatalf("expected root job count 1, got %d", tr.Root.ReadJobCount())
	}

	d.MarkJobFinished()
	if tr.Root.ReadJobCount() != 0 {
		t.Fatalf("expected root job count 0 after finish, got %d", tr.Root.ReadJobCount())
	}
}

func TestIsInSubtree(t *testing.T) {
	tr := New("/t")
	a := NewDir("a")
	tr.ChildAdded(tr.Root, a)
	b := NewDir("b")
	tr.ChildAdded(a, b)

	if !b.IsInSubtree(a) {
		t.Fatalf("b should be in subtree of a")
	}
	if b.IsInSubtree(NewDir("unrelated")) {
		t.Fatalf("b should not be in subtree of an unrelated node")
	}
	if !a.IsInSubtree(a) {
		t.Fatalf("a subtree check should include itself")
	}
}

func TestIsTopLevel(t *testing.T) {
	tr := New("/t")
	a := NewDir("a")
	tr.ChildAdded(tr.Root, a)
	b := NewDir("b")
	tr.ChildAdded(a, b)

	if !tr.IsTopLevel(a) {
		t.Fatalf("a should be top level")
	}
	if tr.IsTopLevel(b) {
		t.Fatalf("b should not be top level")
	}
}
