package tui

import (
	"time"

	"codeberg.org/tslocum/cview"

	"github.com/Hubcapp/qdirstat/internal/tree"
)

// trySendUIUpdate is the non-blocking handoff into the cview draw loop;
// every Observer callback below runs on the queue's own goroutine and
// must never block it.
func (a *App) trySendUIUpdate(f func()) {
	select {
	case a.uiUpdates <- f:
	default:
	}
}

// setRoot queues a SetRoot the same way, to avoid racing cview's own draw
// goroutine.
func (a *App) setRoot(primitive cview.Primitive, focus bool) {
	a.app.QueueUpdateDraw(func() {
		a.app.SetRoot(primitive, focus)
	})
}

// ChildAdded implements tree.Observer. It is the scan's only per-entry
// signal; pushes are rate limited to progressPushInterval so a fast scan
// doesn't flood the draw loop.
func (a *App) ChildAdded(n *tree.Node) {
	a.scannedCount.Add(1)

	now := time.Now()
	if now.Sub(a.lastProgressPush) < progressPushInterval {
		return
	}
	a.lastProgressPush = now

	path := a.replaceHomeWithTilde(n.Path())
	a.trySendUIUpdate(func() { a.updateProgressStatus(path) })
}

// DeletingChild implements tree.Observer; nothing to show beyond the
// eventual table rebuild confirmDelete/deleteSelectedItem already queue.
func (a *App) DeletingChild(n *tree.Node) {}

// ReadJobFinished implements tree.Observer. When the directory currently on
// screen settles, refresh the table so new children (or its terminal
// state) show up without waiting for the whole scan to finish.
func (a *App) ReadJobFinished(n *tree.Node) {
	if a.current != nil && n == a.current {
		a.trySendUIUpdate(func() { a.buildTable() })
	}
}

// FinalizeLocal implements tree.Observer; same refresh trigger as
// ReadJobFinished; directories the user is looking at get their size
// rollup reflected live.
func (a *App) FinalizeLocal(n *tree.Node) {
	if a.current != nil && (n == a.current || n.Parent == a.current) {
		a.trySendUIUpdate(func() { a.buildTable() })
	}
}

// Starting implements jobqueue.QueueObserver.
func (a *App) Starting() {
	a.trySendUIUpdate(func() { a.updateProgressStatus(a.replaceHomeWithTilde(a.rootPath)) })
}

// Finished implements jobqueue.QueueObserver.
func (a *App) Finished() {
	a.trySendUIUpdate(a.updateFinalStatus)
}
