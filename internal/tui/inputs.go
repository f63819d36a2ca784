package tui

import "github.com/gdamore/tcell/v3"

// handleInput is the application's single key dispatcher. Modal vi-style
// remaps (h/l to left/right) take priority while any modal is open;
// otherwise keys drive the tree browser directly.
func (a *App) handleInput(event *tcell.EventKey) *tcell.EventKey {
	if a.showDetail || a.showConfirm || a.showTheme || a.showQuit {
		switch event.Str() {
		case "l":
			return tcell.NewEventKey(tcell.KeyRight, tcell.KeyNames[tcell.KeyRight], tcell.ModNone)
		case "h":
			return tcell.NewEventKey(tcell.KeyLeft, tcell.KeyNames[tcell.KeyLeft], tcell.ModNone)
		}
		return event
	}

	switch event.Key() {
	case tcell.KeyEnter:
		a.descend()
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.ascend()
		return nil
	}

	switch event.Str() {
	case "s", "S":
		if !a.IsScanning() {
			a.startScanning()
		}
		return nil
	case "q", "Q":
		a.showQuitConfirm()
		return nil
	case "l":
		a.descend()
		return nil
	case "h":
		a.ascend()
		return nil
	case "i", "I":
		a.showItemDetail()
	case "d", "D":
		a.confirmDelete()
	case "t", "T":
		a.showThemeSelector()
	}

	return event
}
