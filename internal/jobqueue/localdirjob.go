package jobqueue

import (
	"log"
	"path/filepath"

	"github.com/Hubcapp/qdirstat/internal/cachefile"
	"github.com/Hubcapp/qdirstat/internal/excluderules"
	"github.com/Hubcapp/qdirstat/internal/fsscan"
	"github.com/Hubcapp/qdirstat/internal/tree"
)

// Config bundles the per-scan knobs a LocalDirJob tree needs: exclude
// rules, the mount-crossing policy, and the cache filename it watches for.
type Config struct {
	Rules            *excluderules.Rules
	CrossMountPoints bool
	CacheFileName    string
}

func (c Config) cacheName() string {
	if c.CacheFileName == "" {
		return cachefile.DefaultCacheName
	}
	return c.CacheFileName
}

// LocalDirJob reads one directory's entries in a single Run() call,
// enqueueing a child LocalDirJob per subdirectory.
type LocalDirJob struct {
	t    *tree.Tree
	dir  *tree.Node
	path string
	cfg  Config

	applyChildExclude bool
}

// NewSeedLocalDirJob creates the top-level scan: lstats path, attaches it
// under t.Root, and returns the job that will read it.
func NewSeedLocalDirJob(t *tree.Tree, path string, cfg Config) (*LocalDirJob, error) {
	path = filepath.Clean(path)

	st, err := fsscan.LstatPath(path)
	if err != nil {
		return nil, err
	}
	dir := statToDirNode(path, st)
	t.ChildAdded(t.Root, dir)
	t.Device = fsscan.DeviceForPath(path)

	return newLocalDirJob(t, dir, path, false, cfg), nil
}

func newLocalDirJob(t *tree.Tree, dir *tree.Node, path string, applyChildExclude bool, cfg Config) *LocalDirJob {
	return &LocalDirJob{t: t, dir: dir, path: path, cfg: cfg, applyChildExclude: applyChildExclude}
}

// Dir implements Job.
func (j *LocalDirJob) Dir() *tree.Node { return j.dir }

// Run reads and classifies every entry in one directory.
func (j *LocalDirJob) Run(q *Queue) Outcome {
	if err := fsscan.CheckAccess(j.path); err != nil {
		j.dir.SetReadState(tree.Error)
		j.t.FinalizeLocalNotify(j.dir)
		j.t.ReadJobFinishedNotify(j.dir)
		return Done
	}

	entries, err := fsscan.ReadDirStat(j.path)
	if err != nil {
		j.dir.SetReadState(tree.Error)
		j.t.FinalizeLocalNotify(j.dir)
		j.t.ReadJobFinishedNotify(j.dir)
		return Done
	}

	j.dir.SetReadState(tree.Reading)

	var fileChildren []string
	cacheName := j.cfg.cacheName()

	for _, ent := range entries {
		if ent.Err != nil {
			placeholder := tree.NewDir(ent.Name)
			placeholder.SetReadState(tree.Error)
			j.t.ChildAdded(j.dir, placeholder)
			continue
		}

		childPath := filepath.Join(j.path, ent.Name)

		if ent.Stat.IsDir() {
			j.processSubDir(q, ent, childPath)
			continue
		}

		if ent.Name == cacheName {
			if j.cachePreempt(q, childPath) {
				return Killed
			}
			continue
		}

		file := statToFileNode(ent.Name, ent.Stat)
		j.t.ChildAdded(j.dir, file)
		fileChildren = append(fileChildren, ent.Name)
	}

	lateExcluded := j.applyChildExclude && j.cfg.Rules != nil && j.cfg.Rules.MatchDirectChildren(fileChildren)

	if lateExcluded {
		q.KillAll(j.dir, nil)
		j.t.ClearSubtree(j.dir)
		j.dir.SetExcluded()
		j.dir.SetReadState(tree.OnRequestOnly)
	} else {
		j.dir.SetReadState(tree.Finished)
	}

	j.t.FinalizeLocalNotify(j.dir)
	j.t.ReadJobFinishedNotify(j.dir)

	if lateExcluded {
		// j.dir's own job counter was already decremented by the KillAll
		// above (j.dir is inside its own subtree), so the queue must not
		// decrement it again.
		return Killed
	}
	return Done
}

// processSubDir classifies one subdirectory entry: excluded, same-device,
// or a mount point, enqueueing a child job where appropriate.
func (j *LocalDirJob) processSubDir(q *Queue, ent fsscan.StatEntry, childPath string) {
	child := statToDirNode(ent.Name, ent.Stat)
	j.t.ChildAdded(j.dir, child)

	if j.cfg.Rules != nil && j.cfg.Rules.Match(childPath, ent.Name) {
		child.SetExcluded()
		child.SetReadState(tree.OnRequestOnly)
		j.t.FinalizeLocalNotify(child)
		return
	}

	sameDevice := child.Dev == j.dir.Dev
	if sameDevice {
		q.Enqueue(newLocalDirJob(j.t, child, childPath, true, j.cfg))
		return
	}

	child.SetMountPoint()

	if parentDev, childDev := fsscan.DeviceForPath(j.path), fsscan.DeviceForPath(childPath); parentDev != "" && childDev != "" && parentDev == childDev {
		log.Printf("jobqueue: %s flagged as mount point but mount table reports same device as %s", childPath, j.path)
	}

	if j.cfg.CrossMountPoints {
		q.Enqueue(newLocalDirJob(j.t, child, childPath, true, j.cfg))
		return
	}

	child.SetReadState(tree.OnRequestOnly)
	j.t.FinalizeLocalNotify(child)
}

// cachePreempt reads the firstDir of the cache file at cachePath and, if it
// names the directory this job is reading, rebuilds the subtree from the
// cache instead of continuing the scan. Returns true if this job has been preempted (and
// thus already removed from the queue's bookkeeping).
func (j *LocalDirJob) cachePreempt(q *Queue, cachePath string) bool {
	probe, err := cachefile.NewReader(cachePath, j.dir, j.t.ChildAdded)
	if err != nil {
		return false
	}

	if filepath.Clean(probe.FirstDir()) != filepath.Clean(j.path) {
		probe.Close()
		return false
	}

	if err := probe.Rewind(); err != nil {
		probe.Close()
		return false
	}

	if j.t.IsTopLevel(j.dir) {
		log.Printf("jobqueue: %s replaces the whole tree", cachePath)
		oldRoot := j.t.Root
		j.t.Clear()
		probe.Rebind(j.t.Root)
		cacheJob := NewCacheReadJob(j.t, j.t.Root, probe)
		q.Enqueue(cacheJob)
		q.KillAll(oldRoot, cacheJob)
		return true
	}

	parent := j.dir.Parent
	probe.Rebind(parent)
	cacheJob := NewCacheReadJob(j.t, parent, probe)
	q.Enqueue(cacheJob)
	parent.SetReadState(tree.Reading)
	j.t.DeleteSubtree(j.dir)
	q.KillAll(j.dir, cacheJob)
	return true
}
