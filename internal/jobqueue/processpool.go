package jobqueue

import (
	"os/exec"
)

// ExitEvent reports a pending process's completion back to the Queue that
// owns the job blocked on it.
type ExitEvent struct {
	Job     Job
	Code    int
	Crashed bool

	release func()
}

type pendingProc struct {
	job Job
	cmd *exec.Cmd
}

// Pool bounds concurrently running external processes to a fixed capacity:
// add appends to a pending list, Start transitions staged processes to
// live, and each exit frees a slot for the next pending process.
type Pool struct {
	capacity int
	active   int
	pending  []*pendingProc
	exitCh   chan<- ExitEvent
}

// NewPool creates a pool with the given capacity (at least 1) that posts
// exit events to exitCh.
func NewPool(capacity int, exitCh chan<- ExitEvent) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{capacity: capacity, exitCh: exitCh}
}

// Add stages cmd, to be run on job's behalf once a slot is free.
func (p *Pool) Add(job Job, cmd *exec.Cmd) {
	p.pending = append(p.pending, &pendingProc{job: job, cmd: cmd})
}

// Start launches pending processes until the pool is at capacity.
func (p *Pool) Start() {
	for p.active < p.capacity && len(p.pending) > 0 {
		pp := p.pending[0]
		p.pending = p.pending[1:]
		p.launch(pp)
	}
}

func (p *Pool) launch(pp *pendingProc) {
	p.active++

	if err := pp.cmd.Start(); err != nil {
		p.postExit(pp.job, -1, true)
		return
	}

	go func() {
		code := 0
		crashed := false
		if err := pp.cmd.Wait(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				code = exitErr.ExitCode()
			} else {
				crashed = true
			}
		}
		p.postExit(pp.job, code, crashed)
	}()
}

// postExit sends the exit event with a release closure that frees the slot
// and launches the next pending process once the Queue has processed it.
func (p *Pool) postExit(job Job, code int, crashed bool) {
	p.exitCh <- ExitEvent{
		Job:     job,
		Code:    code,
		Crashed: crashed,
		release: func() {
			p.active--
			p.Start()
		},
	}
}
