package jobqueue

import (
	"github.com/Hubcapp/qdirstat/internal/cachefile"
	"github.com/Hubcapp/qdirstat/internal/tree"
)

// linesPerTick bounds how much of a cache file is parsed per tick: large
// enough to amortize dispatch cost, small enough to keep any one tick
// bounded.
const linesPerTick = 1000

// CacheReadJob drains a cachefile.Reader in bounded chunks, one chunk per
// tick, materializing the snapshot under parent.
type CacheReadJob struct {
	t      *tree.Tree
	parent *tree.Node
	reader *cachefile.Reader
}

// NewCacheReadJob binds reader to parent; reader must already have been
// Rebind to parent by the caller (cache preemption decides the final
// parent only after checking firstDir).
func NewCacheReadJob(t *tree.Tree, parent *tree.Node, reader *cachefile.Reader) *CacheReadJob {
	return &CacheReadJob{t: t, parent: parent, reader: reader}
}

// Dir implements Job: the cache job is bound to the directory it's
// repopulating, so KillAll/Abort can reach it.
func (j *CacheReadJob) Dir() *tree.Node { return j.parent }

// Run parses up to linesPerTick entries; finishes on EOF or error,
// otherwise yields so the queue re-dispatches next tick.
func (j *CacheReadJob) Run(q *Queue) Outcome {
	if j.reader == nil || !j.reader.OK() {
		return Done
	}

	_, err := j.reader.Read(linesPerTick)
	if err != nil {
		j.reader.Close()
		return Done
	}

	if j.reader.EOF() {
		j.reader.Close()
		return Done
	}

	return Yield
}
