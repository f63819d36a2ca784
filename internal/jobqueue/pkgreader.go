package jobqueue

import (
	"bytes"
	"os"
	"os/exec"

	"github.com/Hubcapp/qdirstat/internal/pkgmgr"
	"github.com/Hubcapp/qdirstat/internal/tree"
)

// PkgSelector decides which installed packages PkgReader attaches to the
// tree. SelectAll is the common case.
type PkgSelector func(pkgmgr.PkgInfo) bool

// SelectAll accepts every installed package.
func SelectAll(pkgmgr.PkgInfo) bool { return true }

// PkgReader is a one-shot driver: it is not itself a Job, it enumerates
// installed packages once and spawns one blocked PkgJob per selected
// package, throttled through a Pool.
type PkgReader struct {
	t       *tree.Tree
	q       *Queue
	manager pkgmgr.Manager
	pool    *Pool
}

// NewPkgReader builds a reader driving manager's packages through q, with
// at most maxParallel file-list processes running at once.
func NewPkgReader(t *tree.Tree, q *Queue, manager pkgmgr.Manager, maxParallel int) *PkgReader {
	return &PkgReader{t: t, q: q, manager: manager, pool: NewPool(maxParallel, q.ExitCh)}
}

// Start queries installed packages, filters with selector, attaches a
// Pkg: root plus one child per selected package, and begins the
// throttled file-list processes. Returns the Pkg: root node.
func (r *PkgReader) Start(selector PkgSelector) (*tree.Node, error) {
	if selector == nil {
		selector = SelectAll
	}

	all, err := r.manager.InstalledPackages()
	if err != nil {
		return nil, err
	}

	var selected []pkgmgr.PkgInfo
	for _, p := range all {
		if selector(p) {
			selected = append(selected, p)
		}
	}

	displayNames := disambiguate(selected)

	pkgRoot := tree.NewPkgRoot("Pkg:")
	r.t.ChildAdded(r.t.Root, pkgRoot)

	for i, p := range selected {
		pkgNode := tree.NewDir(displayNames[i])
		r.t.ChildAdded(pkgRoot, pkgNode)

		program, args := r.manager.FileListCommand(p)
		cmd := exec.Command(program, args...)
		cmd.Env = append(os.Environ(), "LANG=C")

		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &out

		job := newPkgJob(r.t, pkgNode, r.manager, &out)
		r.q.Block(job)
		r.pool.Add(job, cmd)
	}

	r.t.FinalizeLocalNotify(pkgRoot)
	r.pool.Start()

	return pkgRoot, nil
}

// disambiguate handles packages sharing a base name: their version and/or
// architecture is appended to stay distinct.
func disambiguate(pkgs []pkgmgr.PkgInfo) []string {
	groups := make(map[string][]int)
	for i, p := range pkgs {
		groups[p.BaseName] = append(groups[p.BaseName], i)
	}

	names := make([]string, len(pkgs))
	for base, idxs := range groups {
		if len(idxs) == 1 {
			names[idxs[0]] = base
			continue
		}

		versions := make(map[string]bool)
		arches := make(map[string]bool)
		for _, i := range idxs {
			versions[pkgs[i].Version] = true
			arches[pkgs[i].Arch] = true
		}
		multiVersion := len(versions) > 1
		multiArch := len(arches) > 1

		for _, i := range idxs {
			name := base
			if multiVersion {
				name += "-" + pkgs[i].Version
			}
			if multiArch {
				name += ":" + pkgs[i].Arch
			}
			names[i] = name
		}
	}
	return names
}
