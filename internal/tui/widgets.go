package tui

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"codeberg.org/tslocum/cview"
	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v3"

	"github.com/Hubcapp/qdirstat/internal/tree"
)

// IsScanning reports whether a scan is in flight.
func (a *App) IsScanning() bool { return a.scanning.Load() }

// buildTable repopulates the table from a.current's children, largest
// first, so the biggest offender is always at the top.
func (a *App) buildTable() *cview.Table {
	theme := a.currentTheme
	table := a.table
	table.Clear()

	if a.current == nil {
		return table
	}

	children := append([]*tree.Node(nil), a.current.Children...)
	sort.Slice(children, func(i, j int) bool { return children[i].Size > children[j].Size })

	for row, n := range children {
		nameCell := cview.NewTableCell(" " + displayName(n))
		nameCell.SetTextColor(nameColor(&theme, n))
		nameCell.SetAlign(cview.AlignLeft)
		nameCell.SetExpansion(1)
		nameCell.SetReference(n)
		table.SetCell(row, 0, nameCell)

		sizeCell := cview.NewTableCell(fmt.Sprintf(" %s ", humanize.Bytes(uint64(max64(n.Size, 0)))))
		sizeCell.SetTextColor(theme.yellow)
		sizeCell.SetAlign(cview.AlignRight)
		table.SetCell(row, 1, sizeCell)

		modCell := cview.NewTableCell(" " + humanize.Time(n.MTime))
		modCell.SetTextColor(theme.fg)
		modCell.SetAlign(cview.AlignLeft)
		table.SetCell(row, 2, modCell)
	}

	table.SetBorder(false)
	table.SetBorders(false)
	table.SetSelectable(true, false)
	table.SetSeparator(' ')

	return table
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func displayName(n *tree.Node) string {
	name := n.Name
	if n.IsDir() {
		name += "/"
	}
	switch {
	case n.State == tree.Error:
		name += " [error]"
	case n.MountPoint:
		name += " [mount]"
	case n.Excluded:
		name += " [excluded]"
	}
	return name
}

func nameColor(theme *Theme, n *tree.Node) tcell.Color {
	switch {
	case n.State == tree.Error:
		return theme.red
	case n.Excluded, n.MountPoint:
		return theme.gray
	case n.IsDir():
		return theme.blue
	default:
		return theme.fg
	}
}

// selectedNode returns the *tree.Node bound to the currently highlighted
// row, or nil if the table is empty.
func (a *App) selectedNode() *tree.Node {
	if a.table == nil {
		return nil
	}
	row, _ := a.table.GetSelection()
	cell := a.table.GetCell(row, 0)
	if cell == nil {
		return nil
	}
	n, ok := cell.GetReference().(*tree.Node)
	if !ok {
		return nil
	}
	return n
}

// descend opens the selected directory, pushing the current one onto the
// nav stack.
func (a *App) descend() {
	n := a.selectedNode()
	if n == nil || !n.IsDir() {
		return
	}
	a.navStack = append(a.navStack, navFrame{node: a.current, path: a.curPath})
	a.current = n
	a.curPath = a.curPath + "/" + n.Name
	a.buildTable()
	a.table.Select(0, 0)
}

// ascend pops the nav stack, returning to the parent directory.
func (a *App) ascend() {
	if len(a.navStack) == 0 {
		return
	}
	frame := a.navStack[len(a.navStack)-1]
	a.navStack = a.navStack[:len(a.navStack)-1]
	a.current = frame.node
	a.curPath = frame.path
	a.buildTable()
	a.table.Select(0, 0)
}

func (a *App) showItemDetail() {
	n := a.selectedNode()
	if n == nil {
		return
	}

	var detail strings.Builder
	fmt.Fprintf(&detail, "Name: %s\n", n.Name)
	fmt.Fprintf(&detail, "Kind: %s\n", n.Kind)
	fmt.Fprintf(&detail, "Size: %s\n", humanize.Bytes(uint64(max64(n.Size, 0))))
	fmt.Fprintf(&detail, "State: %s\n", n.State)
	if !n.MTime.IsZero() {
		fmt.Fprintf(&detail, "Modified: %s\n", n.MTime.Format("2006-01-02 15:04:05 MST"))
	}
	if n.MountPoint {
		detail.WriteString("Mount point: yes\n")
	}
	if n.Excluded {
		detail.WriteString("Excluded: yes\n")
	}

	a.detailModal.SetText(detail.String())
	a.showDetail = true
	a.setRoot(a.detailModal, false)
}

func (a *App) confirmDelete() {
	n := a.selectedNode()
	if n == nil {
		return
	}
	text := fmt.Sprintf("Delete '%s'?\n\nSize: %s", n.Name, humanize.Bytes(uint64(max64(n.Size, 0))))
	a.confirmModal.SetText(text)
	a.showConfirm = true
	a.setRoot(a.confirmModal, false)
}

// deleteRequest binds a node to the absolute path it had at the moment
// deletion was confirmed, so a later navigation doesn't change what the
// worker removes.
type deleteRequest struct {
	node *tree.Node
	path string
}

func (a *App) deleteSelectedItem() {
	n := a.selectedNode()
	if n == nil {
		return
	}

	req := deleteRequest{node: n, path: a.curPath + "/" + n.Name}

	a.pendingDeletes.Add(1)
	select {
	case a.deleteQueue <- req:
	default:
		a.pendingDeletes.Add(-1)
		a.trySendUIUpdate(func() { a.footer.SetText("[red] Delete queue full, try again") })
	}
}

func (a *App) deleteWorker() {
	for req := range a.deleteQueue {
		a.activeDeletes.Add(1)

		displayPath := a.replaceHomeWithTilde(req.path)
		a.trySendUIUpdate(func() { a.footer.SetText("[white] Deleting: [black]" + displayPath) })

		err := os.RemoveAll(req.path)

		a.activeDeletes.Add(-1)
		a.deleteDone <- &deleteResult{node: req.node, path: req.path, err: err, success: err == nil}
	}
}

func (a *App) processDeleteResults() {
	for result := range a.deleteDone {
		a.pendingDeletes.Add(-1)
		displayPath := a.replaceHomeWithTilde(result.path)

		if result.err != nil {
			log.Printf("tui: delete %s: %v", result.path, result.err)
			a.trySendUIUpdate(func() {
				a.footer.SetText(fmt.Sprintf("[red] Error deleting %s: %v", displayPath, result.err))
			})
			continue
		}

		parent := result.node.Parent
		if a.tree != nil && parent != nil {
			a.tree.DeleteSubtree(result.node)
		}

		a.trySendUIUpdate(func() {
			if a.current != nil && a.current == parent {
				a.buildTable()
			}
			a.footer.SetText("[white] Deleted: [black]" + displayPath)
		})
	}
}
