package tui

import (
	"fmt"
	"time"

	"codeberg.org/tslocum/cview"
	"github.com/dustin/go-humanize"
)

const footerKeyHints = "[black] [s/S]: Start  Enter/l: Open  Backspace/h: Up  i: Details  [d/D]: Delete  [t/T]: Theme  [q/Q]: Quit"

// updateFinalStatus renders the header/footer once a scan is idle: either
// never started, still sitting on a finished tree, or showing the
// "nothing happening" startup banner.
func (a *App) updateFinalStatus() {
	a.header.SetTextAlign(cview.AlignCenter)
	a.footer.SetTextAlign(cview.AlignCenter)

	if a.current == nil {
		a.header.SetText(fmt.Sprintf("[white] %s — press 's' to scan ", a.replaceHomeWithTilde(a.rootPath)))
		a.footer.SetText(footerKeyHints)
		return
	}

	elapsed := time.Duration(0)
	if !a.scanStart.IsZero() {
		elapsed = time.Since(a.scanStart).Round(time.Second)
	}

	status := fmt.Sprintf("[white] %s | Size: %s | Entries scanned: %s | Elapsed: %s ",
		a.replaceHomeWithTilde(a.curPath),
		humanize.Bytes(uint64(max64(a.current.Size, 0))),
		humanize.Comma(a.scannedCount.Load()),
		elapsed,
	)
	a.header.SetText(status)
	a.footer.SetText(footerKeyHints)
}

// updateProgressStatus shows the path most recently discovered, trimmed to
// fit the terminal width.
func (a *App) updateProgressStatus(path string) {
	w, _ := a.app.GetScreenSize()
	w -= 10
	if w > 0 && len(path) > w {
		path = "..." + path[len(path)-w:]
	}
	a.footer.SetText(" [white]Scanning: [black]" + path)
}
