package jobqueue

import (
	"bytes"
	"log"
	"strings"

	"github.com/Hubcapp/qdirstat/internal/fsscan"
	"github.com/Hubcapp/qdirstat/internal/pkgmgr"
	"github.com/Hubcapp/qdirstat/internal/tree"
)

// PkgJob is a two-phase job: blocked on an external file-listing process,
// then runnable to parse and attach the resulting paths.
type PkgJob struct {
	t       *tree.Tree
	pkgNode *tree.Node
	manager pkgmgr.Manager
	out     *bytes.Buffer

	paths []string
}

func newPkgJob(t *tree.Tree, pkgNode *tree.Node, manager pkgmgr.Manager, out *bytes.Buffer) *PkgJob {
	return &PkgJob{t: t, pkgNode: pkgNode, manager: manager, out: out}
}

// Dir implements Job: the synthetic package directory under Pkg:.
func (j *PkgJob) Dir() *tree.Node { return j.pkgNode }

// HandleExit is phase A: inspect the finished process. Success hands the
// job back to the queue as runnable; any failure marks the package Error
// and finishes the job directly, since a blocked job never passes through
// the normal runnable dispatch path.
func (j *PkgJob) HandleExit(q *Queue, ev ExitEvent) {
	if ev.Crashed || ev.Code != 0 {
		j.pkgNode.SetReadState(tree.Error)
		j.t.FinalizeLocalNotify(j.pkgNode)
		j.t.ReadJobFinishedNotify(j.pkgNode)
		q.FinishBlocked(j)
		return
	}

	j.paths = j.manager.ParseFileList(j.out.String())
	q.Unblock(j)
}

// Run implements Phase B: attach every reported path, then finalize the
// whole package subtree.
func (j *PkgJob) Run(q *Queue) Outcome {
	for _, p := range j.paths {
		if p == "" {
			continue
		}
		j.addFile(p)
	}
	finalizeAll(j.t, j.pkgNode)
	j.t.ReadJobFinishedNotify(j.pkgNode)
	return Done
}

// addFile walks path's components from the package root, synthesizing any
// missing intermediate directory by lstat-ing the real absolute path.
func (j *PkgJob) addFile(path string) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return
	}
	segments := strings.Split(trimmed, "/")

	parent := j.pkgNode
	sysPath := ""

	for i, seg := range segments {
		if seg == "" {
			continue
		}
		sysPath += "/" + seg
		isLast := i == len(segments)-1

		var next *tree.Node
		for _, c := range parent.Children {
			if c.Name == seg {
				next = c
				break
			}
		}

		if next == nil {
			// Package trees are synthetic (rooted at Pkg:/<name>, not a
			// real mount), so no mount-point comparison against the
			// parent's device is made here; the node is inserted directly.
			st, err := fsscan.LstatPath(sysPath)
			if err != nil {
				log.Printf("pkgjob: %s: stat %s failed, skipping file", j.pkgNode.Name, sysPath)
				return
			}
			if !isLast && !st.IsDir() {
				log.Printf("pkgjob: %s: expected directory at %s, skipping file", j.pkgNode.Name, sysPath)
				return
			}
			if st.IsDir() {
				next = statToDirNode(seg, st)
			} else {
				next = statToFileNode(seg, st)
			}
			j.t.ChildAdded(parent, next)
		} else if !isLast && !next.IsDir() {
			log.Printf("pkgjob: %s: expected directory at %s, skipping file", j.pkgNode.Name, sysPath)
			return
		}

		parent = next
	}
}

// finalizeAll is phase B: recursively marks every descendant directory
// Finished (unless it's already Error), emitting finalizeLocal per node
// bottom-up.
func finalizeAll(t *tree.Tree, n *tree.Node) {
	if !n.IsDir() {
		return
	}
	for _, c := range n.Children {
		finalizeAll(t, c)
	}
	if n.State != tree.Error {
		n.SetReadState(tree.Finished)
	}
	t.FinalizeLocalNotify(n)
}
