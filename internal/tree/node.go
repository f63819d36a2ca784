// Package tree implements the in-memory directory tree: the data model
// that the read-job scheduler in internal/jobqueue populates. It owns
// every node; jobs only hold non-owning references to the node they are
// reading.
package tree

import (
	"os"
	"time"
)

// Kind distinguishes the three node variants.
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindPkg
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindPkg:
		return "pkg"
	default:
		return "unknown"
	}
}

// ReadState is a node's position in the read-job lifecycle.
type ReadState int

const (
	Queued ReadState = iota
	Reading
	Finished
	OnRequestOnly
	Error
	Aborted
)

func (s ReadState) String() string {
	switch s {
	case Queued:
		return "queued"
	case Reading:
		return "reading"
	case Finished:
		return "finished"
	case OnRequestOnly:
		return "on-request-only"
	case Error:
		return "error"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further mutation is expected for a node in
// this state: once readJobCount reaches zero and the state is terminal,
// the subtree is stable.
func (s ReadState) IsTerminal() bool {
	switch s {
	case Finished, OnRequestOnly, Error, Aborted:
		return true
	default:
		return false
	}
}

// Node is one entry in the tree: a directory, a plain file, or a synthetic
// installed-package directory.
type Node struct {
	Name  string
	Kind  Kind
	Size  int64
	MTime time.Time
	Mode  os.FileMode
	UID   uint32
	GID   uint32
	Dev   uint64
	Ino   uint64
	Nlink uint64

	State      ReadState
	Excluded   bool
	MountPoint bool

	Parent   *Node
	Children []*Node // ordered by insertion; only meaningful for Dir/Pkg

	subtreeJobs int
}

// NewDir creates a directory node in state Queued.
func NewDir(name string) *Node {
	return &Node{Name: name, Kind: KindDir, State: Queued}
}

// NewFile creates a plain file node.
func NewFile(name string) *Node {
	return &Node{Name: name, Kind: KindFile, State: Finished}
}

// NewPkgRoot creates the synthetic "Pkg:" top-level node.
func NewPkgRoot(name string) *Node {
	return &Node{Name: name, Kind: KindPkg, State: Queued}
}

// IsDir reports whether this node can have children (Dir or Pkg).
func (n *Node) IsDir() bool { return n.Kind == KindDir || n.Kind == KindPkg }

// newRoot creates the virtual root of a tree: its own parent.
func newRoot() *Node {
	r := &Node{Name: "", Kind: KindDir, State: Finished}
	r.Parent = r
	return r
}

// IsRoot reports whether n is its own parent (the virtual root).
func (n *Node) IsRoot() bool { return n.Parent == n }

// InsertChild links child under n, appending to the ordered child list, and
// bumps n's (and its ancestors') subtree job counter when the child is a
// directory still being read.
func (n *Node) InsertChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)

	if child.IsDir() && !child.State.IsTerminal() {
		n.bumpSubtreeJobs(1)
	}
}

// RemoveChild unlinks child from n's child list without touching counters;
// callers that remove a still-pending subtree must balance the counter
// themselves (jobqueue.Queue does this via KillAll).
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// bumpSubtreeJobs adds delta to n's pending-job counter and every ancestor's,
// stopping at the self-parented root (or at the top of a detached subtree,
// whose topmost node has no parent).
func (n *Node) bumpSubtreeJobs(delta int) {
	for p := n; p != nil; p = p.Parent {
		p.subtreeJobs += delta
		if p.IsRoot() {
			return
		}
	}
}

// ReadJobCount returns the number of outstanding read jobs rooted anywhere
// in n's subtree.
func (n *Node) ReadJobCount() int { return n.subtreeJobs }

// MarkJobFinished decrements n's (and ancestors') pending-job counter. It is
// called once per job, regardless of whether the job finished normally, was
// killed, or was aborted.
func (n *Node) MarkJobFinished() { n.bumpSubtreeJobs(-1) }

// SetReadState transitions the node's read state.
func (n *Node) SetReadState(s ReadState) { n.State = s }

// SetExcluded marks the node as matched by an exclude rule.
func (n *Node) SetExcluded() { n.Excluded = true }

// SetMountPoint flags the node as a filesystem mount point (device differs
// from its parent's).
func (n *Node) SetMountPoint() { n.MountPoint = true }

// FinalizeLocal sums the sizes of direct children into n's own Size. Plain
// files already carry their own size; this only matters for directories,
// whose size is the sum of what was found under them.
func (n *Node) FinalizeLocal() {
	if !n.IsDir() {
		return
	}
	var total int64
	for _, c := range n.Children {
		total += c.Size
	}
	n.Size = total
}

// Path reconstructs n's absolute path by walking up to the root. A direct
// child of the virtual root carries its own absolute path as Name (that's
// what NewSeedLocalDirJob and NewPkgRoot seed it with), so it is returned
// unchanged rather than prefixed with another "/".
func (n *Node) Path() string {
	if n.IsRoot() {
		return "/"
	}
	if n.Parent.IsRoot() {
		return n.Name
	}
	parent := n.Parent.Path()
	if parent == "/" {
		return "/" + n.Name
	}
	return parent + "/" + n.Name
}

// IsInSubtree reports whether n is subtree itself or a descendant of it.
func (n *Node) IsInSubtree(subtree *Node) bool {
	for p := n; ; p = p.Parent {
		if p == subtree {
			return true
		}
		if p.IsRoot() {
			return false
		}
	}
}
