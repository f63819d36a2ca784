package tree

// Observer receives notifications emitted to external subscribers as the
// tree is populated and mutated. The TUI and the headless CLI reporter
// both implement this.
type Observer interface {
	ChildAdded(n *Node)
	DeletingChild(n *Node)
	ReadJobFinished(n *Node)
	FinalizeLocal(n *Node)
}

// Tree owns every Node reachable from Root. It is mutated exclusively from
// the event-loop goroutine that drives the jobqueue.Queue bound to it; no
// locking is needed.
type Tree struct {
	Root      *Node
	RootPath  string // absolute path of the directory this tree was seeded from
	Device    string // device string of the tree's own root mount point
	observers []Observer
}

// New creates an empty tree rooted at rootPath.
func New(rootPath string) *Tree {
	return &Tree{
		Root:     newRoot(),
		RootPath: rootPath,
	}
}

// Subscribe registers an observer for node-level notifications.
func (t *Tree) Subscribe(o Observer) { t.observers = append(t.observers, o) }

func (t *Tree) notifyChildAdded(n *Node) {
	for _, o := range t.observers {
		o.ChildAdded(n)
	}
}

func (t *Tree) notifyDeletingChild(n *Node) {
	for _, o := range t.observers {
		o.DeletingChild(n)
	}
}

func (t *Tree) notifyReadJobFinished(n *Node) {
	for _, o := range t.observers {
		o.ReadJobFinished(n)
	}
}

func (t *Tree) notifyFinalizeLocal(n *Node) {
	for _, o := range t.observers {
		o.FinalizeLocal(n)
	}
}

// ChildAdded links child under parent and fires the ChildAdded notification.
func (t *Tree) ChildAdded(parent, child *Node) {
	parent.InsertChild(child)
	t.notifyChildAdded(child)
}

// FinalizeLocalNotify fires FinalizeLocal just before a directory settles
// into its terminal state, then performs the size rollup.
func (t *Tree) FinalizeLocalNotify(n *Node) {
	t.notifyFinalizeLocal(n)
	n.FinalizeLocal()
}

// ReadJobFinishedNotify fires when a directory's read state becomes
// terminal.
func (t *Tree) ReadJobFinishedNotify(n *Node) { t.notifyReadJobFinished(n) }

// IsTopLevel reports whether d is a direct child of the virtual root — the
// tree's single seed directory.
func (t *Tree) IsTopLevel(d *Node) bool { return d.Parent == t.Root }

// Clear discards the entire tree, replacing Root with a fresh virtual root.
// Used by the top-level cache-preemption path.
func (t *Tree) Clear() {
	t.Root = newRoot()
}

// DeleteSubtree removes d from its parent's child list and notifies
// subscribers before doing so. The caller is responsible for having already
// killed any read jobs bound to d or its descendants (jobqueue.Queue.KillAll).
func (t *Tree) DeleteSubtree(d *Node) {
	if d == nil || d.IsRoot() {
		return
	}
	t.notifyDeletingChild(d)
	d.Parent.RemoveChild(d)
}

// ClearSubtree removes all of d's children (used by late-exclude: d itself
// survives, emptied).
func (t *Tree) ClearSubtree(d *Node) {
	for _, c := range d.Children {
		t.notifyDeletingChild(c)
	}
	d.Children = nil
}
