// Package jobqueue implements the cooperative, single-threaded read-job
// scheduler: a FIFO of runnable jobs plus a set of jobs blocked on an
// external process, dispatched one Run() per tick. Jobs report their
// outcome explicitly (Yield/Block/Done/Killed) rather than deleting
// themselves.
package jobqueue

import (
	"context"

	"github.com/Hubcapp/qdirstat/internal/tree"
)

// Outcome is what a Job's Run call reports back to the Queue. The queue,
// never the job, is responsible for bookkeeping and destruction.
type Outcome int

const (
	// Yield means Run did useful work but isn't finished; the job stays
	// head of runnable and runs again next tick (used by CacheReadJob's
	// chunked parse).
	Yield Outcome = iota
	// Block moves the job to the blocked set; only a matching external
	// event (process exit) can return it to runnable.
	Block
	// Done means the job finished normally this tick; the queue dequeues
	// and discards it.
	Done
	// Killed means the job already removed itself from the queue's
	// bookkeeping (via KillAll, during cache preemption or late-exclude)
	// before returning; the queue must not touch runnable again for it.
	Killed
)

// Job is one unit of scheduled work bound to a directory (or package) node.
type Job interface {
	Run(q *Queue) Outcome
	// Dir is the node this job populates; KillAll and Abort use it to test
	// subtree membership and to mark terminal state.
	Dir() *tree.Node
}

// exitHandler is implemented by jobs that can be blocked on an external
// process (PkgJob). The queue type-asserts for it when an ExitEvent
// arrives on ExitCh.
type exitHandler interface {
	HandleExit(q *Queue, ev ExitEvent)
}

// QueueObserver receives the queue-level notifications: starting when the
// first job is enqueued, finished when both runnable and blocked empty
// out.
type QueueObserver interface {
	Starting()
	Finished()
}

// Queue holds the runnable FIFO and the blocked set for one Tree.
type Queue struct {
	Tree *tree.Tree

	runnable []Job
	blocked  map[Job]struct{}

	// ExitCh carries process-exit events from any ProcessPool driving
	// blocked jobs for this queue. RunLoop selects on it between ticks —
	// the one point where the cooperative loop observes real OS
	// concurrency.
	ExitCh chan ExitEvent

	observers []QueueObserver
	done      bool
}

// New creates an empty queue bound to t.
func New(t *tree.Tree) *Queue {
	return &Queue{
		Tree:    t,
		blocked: make(map[Job]struct{}),
		ExitCh:  make(chan ExitEvent, 16),
	}
}

// Subscribe registers a queue-level observer.
func (q *Queue) Subscribe(o QueueObserver) { q.observers = append(q.observers, o) }

func (q *Queue) notifyStarting() {
	for _, o := range q.observers {
		o.Starting()
	}
}

func (q *Queue) notifyFinished() {
	for _, o := range q.observers {
		o.Finished()
	}
}

// Enqueue appends job to runnable. If the queue was idle (both sets
// empty), this arms the "timer" conceptually and emits starting.
func (q *Queue) Enqueue(job Job) {
	wasIdle := len(q.runnable) == 0 && len(q.blocked) == 0
	q.runnable = append(q.runnable, job)
	if wasIdle {
		q.done = false
		q.notifyStarting()
	}
}

// Block moves job into the blocked set. Only Unblock or FinishBlocked
// return it to circulation.
func (q *Queue) Block(job Job) {
	q.blocked[job] = struct{}{}
}

// Unblock moves a previously blocked job back onto the runnable FIFO.
func (q *Queue) Unblock(job Job) {
	delete(q.blocked, job)
	q.runnable = append(q.runnable, job)
}

// FinishBlocked removes job from the blocked set without ever returning it
// to runnable — used when a blocked job fails outright (process crash or
// non-zero exit) and calls what would be finished() directly from its exit
// handler.
func (q *Queue) FinishBlocked(job Job) {
	delete(q.blocked, job)
	if d := job.Dir(); d != nil {
		d.MarkJobFinished()
	}
	q.checkFinished()
}

// tick dispatches exactly one Run() on the head of runnable. Returns
// false if runnable was empty.
func (q *Queue) tick() bool {
	if len(q.runnable) == 0 {
		return false
	}
	job := q.runnable[0]
	outcome := job.Run(q)

	switch outcome {
	case Yield:
		// Stays head; dispatched again next tick.
	case Block:
		q.runnable = q.runnable[1:]
		q.blocked[job] = struct{}{}
	case Done:
		q.runnable = q.runnable[1:]
		if d := job.Dir(); d != nil {
			d.MarkJobFinished()
		}
	case Killed:
		// The job already adjusted runnable/blocked itself (KillAll),
		// including possibly removing itself. Nothing left to do.
	}

	q.checkFinished()
	return true
}

func (q *Queue) checkFinished() {
	if !q.done && len(q.runnable) == 0 && len(q.blocked) == 0 {
		q.done = true
		q.notifyFinished()
	}
}

func (q *Queue) handleExit(ev ExitEvent) {
	if eh, ok := ev.Job.(exitHandler); ok {
		eh.HandleExit(q, ev)
	}
	if ev.release != nil {
		ev.release()
	}
	q.checkFinished()
}

// RunLoop drives the queue to completion: it dispatches ticks while
// runnable is non-empty, and otherwise blocks on ExitCh (or ctx
// cancellation) while anything remains blocked. Returns when both sets are
// empty or ctx is cancelled.
func (q *Queue) RunLoop(ctx context.Context) {
	for {
		if len(q.runnable) > 0 {
			q.tick()
			continue
		}
		if len(q.blocked) == 0 {
			return
		}
		select {
		case <-ctx.Done():
			q.Abort()
			return
		case ev := <-q.ExitCh:
			q.handleExit(ev)
		}
	}
}

// KillAll removes every job (runnable or blocked) whose bound directory is
// inside subtree, except is never touched. Their directory's job counter
// is decremented as if each had finished.
func (q *Queue) KillAll(subtree *tree.Node, except Job) {
	kept := q.runnable[:0:0]
	for _, j := range q.runnable {
		if j == except || !boundInside(j, subtree) {
			kept = append(kept, j)
			continue
		}
		if d := j.Dir(); d != nil {
			d.MarkJobFinished()
		}
	}
	q.runnable = kept

	for j := range q.blocked {
		if j == except || !boundInside(j, subtree) {
			continue
		}
		delete(q.blocked, j)
		if d := j.Dir(); d != nil {
			d.MarkJobFinished()
		}
	}

	q.checkFinished()
}

func boundInside(j Job, subtree *tree.Node) bool {
	d := j.Dir()
	if d == nil {
		return false
	}
	return d.IsInSubtree(subtree)
}

// Abort is bulk cancellation: every job (runnable and blocked) is
// discarded and its bound directory marked Aborted.
func (q *Queue) Abort() {
	for _, j := range q.runnable {
		if d := j.Dir(); d != nil {
			d.SetReadState(tree.Aborted)
		}
	}
	for j := range q.blocked {
		if d := j.Dir(); d != nil {
			d.SetReadState(tree.Aborted)
		}
	}
	q.runnable = nil
	q.blocked = make(map[Job]struct{})
	if !q.done {
		q.done = true
		q.notifyFinished()
	}
}

// Idle reports whether both runnable and blocked are empty.
func (q *Queue) Idle() bool { return len(q.runnable) == 0 && len(q.blocked) == 0 }
