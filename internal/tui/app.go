// Package tui is the live directory-tree browser: a cview/tcell
// application that drives an internal/jobqueue.Queue over an
// internal/tree.Tree and renders whichever directory is currently open,
// one level at a time, as a flat table sorted by size.
package tui

import (
	"context"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"codeberg.org/tslocum/cview"

	"github.com/Hubcapp/qdirstat/internal/excluderules"
	"github.com/Hubcapp/qdirstat/internal/jobqueue"
	"github.com/Hubcapp/qdirstat/internal/tree"
)

// App is the whole browser: one cview.Application wrapping a header,
// footer, table of the currently open directory's children, and a handful
// of modals (detail, delete confirmation, theme picker, quit confirmation).
type App struct {
	app *cview.Application

	header       *cview.TextView
	footer       *cview.TextView
	table        *cview.Table
	panels       *cview.Panels
	detailModal  *cview.Modal
	confirmModal *cview.Modal
	themeModal   *cview.Modal
	quitModal    *cview.Modal

	rootPath string
	rules    *excluderules.Rules

	tree  *tree.Tree
	queue *jobqueue.Queue

	current   *tree.Node // directory currently displayed
	curPath   string
	navStack  []navFrame
	scanStart time.Time
	scanning  atomic.Bool

	lastProgressPush time.Time
	scannedCount     atomic.Int64

	showDetail  bool
	showConfirm bool
	showTheme   bool
	showQuit    bool

	uiUpdates chan func()

	userHomeDir string

	currentTheme Theme

	deleteQueue    chan deleteRequest
	deleteDone     chan *deleteResult
	activeDeletes  atomic.Int64
	pendingDeletes atomic.Int64

	stopOnce sync.Once
}

type navFrame struct {
	node *tree.Node
	path string
}

type deleteResult struct {
	node    *tree.Node
	path    string
	err     error
	success bool
}

const progressPushInterval = 150 * time.Millisecond

// NewApp builds a browser rooted at scanPath. Scanning does not start
// until the user presses 's'.
func NewApp(scanPath string, rules *excluderules.Rules) *App {
	app := cview.NewApplication()

	theme := defaultTheme()

	header := cview.NewTextView()
	header.SetDynamicColors(true)

	footer := cview.NewTextView()
	footer.SetDynamicColors(true)

	detailModal := cview.NewModal()
	detailModal.SetText("")
	detailModal.AddButtons([]string{"Okay"})

	confirmModal := cview.NewModal()
	confirmModal.SetText("")
	confirmModal.AddButtons([]string{"Delete", "Cancel"})

	themeModal := cview.NewModal()
	themeModal.SetText("")
	names := themeNames()
	themeModal.AddButtons(names)

	quitModal := cview.NewModal()
	quitModal.SetText("")
	quitModal.AddButtons([]string{"Wait", "Force Quit"})

	panels := cview.NewPanels()
	table := cview.NewTable()
	panels.AddPanel("table", table, true, true)

	a := &App{
		app:          app,
		header:       header,
		footer:       footer,
		detailModal:  detailModal,
		confirmModal: confirmModal,
		themeModal:   themeModal,
		quitModal:    quitModal,
		rootPath:     scanPath,
		rules:        rules,
		panels:       panels,
		table:        table,
		uiUpdates:    make(chan func(), 128),
		currentTheme: theme,
		deleteQueue:  make(chan deleteRequest, 100),
		deleteDone:   make(chan *deleteResult, 100),
	}

	flex := cview.NewFlex()
	flex.SetDirection(cview.FlexRow)
	flex.AddItem(header, 1, 0, false)
	flex.AddItem(panels, 0, 1, true)
	flex.AddItem(footer, 1, 0, false)

	app.SetInputCapture(a.handleInput)

	detailModal.SetDoneFunc(func(_ int, _ string) {
		a.showDetail = false
		a.setRoot(flex, true)
	})

	confirmModal.SetDoneFunc(func(_ int, buttonLabel string) {
		a.showConfirm = false
		a.setRoot(flex, true)
		if buttonLabel == "Delete" {
			a.deleteSelectedItem()
		}
	})

	themeModal.SetDoneFunc(func(buttonIndex int, buttonLabel string) {
		a.showTheme = false
		a.setRoot(flex, true)
		if buttonIndex >= 0 && buttonIndex < len(names) {
			a.switchTheme(buttonLabel)
			a.applyTheme()
		}
	})

	quitModal.SetDoneFunc(func(_ int, buttonLabel string) {
		a.showQuit = false
		a.setRoot(flex, true)
		if buttonLabel == "Force Quit" {
			a.Stop()
			a.app.Stop()
		}
	})

	home, err := os.UserHomeDir()
	if err != nil {
		log.Println("tui: no home directory:", err)
	}
	a.userHomeDir = home

	header.SetTextAlign(cview.AlignCenter)
	footer.SetTextAlign(cview.AlignCenter)

	a.setRoot(flex, true)
	a.applyTheme()
	a.updateFinalStatus()

	go a.deleteWorker()
	go a.processDeleteResults()

	return a
}

func (a *App) switchTheme(name string) {
	if th, ok := themes[name]; ok {
		a.currentTheme = th
	}
}

func (a *App) applyTheme() {
	theme := a.currentTheme

	a.header.SetBackgroundColor(theme.headerBg)
	a.header.SetTitleColor(theme.headerFg)
	a.header.SetTextColor(theme.headerFg)

	a.footer.SetBackgroundColor(theme.footerBg)
	a.footer.SetTitleColor(theme.footerFg)
	a.footer.SetTextColor(theme.footerFg)

	for _, m := range []*cview.Modal{a.detailModal, a.confirmModal, a.themeModal, a.quitModal} {
		m.SetBackgroundColor(theme.modalBg)
		m.SetTextColor(theme.modalFg)
		m.SetButtonBackgroundColor(theme.buttonBg)
		m.SetButtonTextColor(theme.buttonFg)
	}

	a.table.SetBackgroundColor(theme.bg)
	a.panels.SetBackgroundColor(theme.bg)

	a.trySendUIUpdate(func() {
		a.buildTable()
		a.updateFinalStatus()
	})
}

func (a *App) showThemeSelector() {
	theme := a.currentTheme
	a.themeModal.SetText("Select theme (current: " + theme.Name + ")")
	a.showTheme = true
	a.setRoot(a.themeModal, false)
}

func (a *App) showQuitConfirm() {
	if a.activeDeletes.Load() == 0 && a.pendingDeletes.Load() == 0 {
		a.Stop()
		a.app.Stop()
		return
	}
	a.quitModal.SetText("Deletions are still running. Quit anyway?")
	a.showQuit = true
	a.setRoot(a.quitModal, false)
}

// Tree gives cmd/qdirstat access to the populated tree once the browser
// exits, e.g. to feed internal/resultscache.
func (a *App) Tree() *tree.Tree { return a.tree }

// replaceHomeWithTilde shortens p for display in the footer/detail views.
func (a *App) replaceHomeWithTilde(p string) string {
	if a.userHomeDir == "" {
		return p
	}
	if after, ok := strings.CutPrefix(p, a.userHomeDir); ok {
		return "~" + after
	}
	return p
}

func (a *App) startScanning() {
	if a.scanning.Load() {
		return
	}

	a.tree = tree.New(a.rootPath)
	a.tree.Subscribe(a)
	a.queue = jobqueue.New(a.tree)
	a.queue.Subscribe(a)

	cfg := jobqueue.Config{Rules: a.rules}
	job, err := jobqueue.NewSeedLocalDirJob(a.tree, a.rootPath, cfg)
	if err != nil {
		a.trySendUIUpdate(func() {
			a.footer.SetText("[red] Error: " + err.Error())
		})
		return
	}

	a.current = job.Dir()
	a.curPath = a.rootPath
	a.navStack = nil
	a.scanStart = time.Now()
	a.scanning.Store(true)

	a.queue.Enqueue(job)

	go func() {
		a.queue.RunLoop(context.Background())
		a.scanning.Store(false)
		a.trySendUIUpdate(func() {
			a.buildTable()
			a.updateFinalStatus()
		})
	}()
}

func (a *App) Stop() {
	a.stopOnce.Do(func() {
		if a.queue != nil && a.scanning.Load() {
			a.queue.Abort()
		}
		close(a.deleteQueue)
	})
}

// Run blocks until the application exits (q/Q, or a forced quit).
func (a *App) Run() error {
	go func() {
		for updateFn := range a.uiUpdates {
			a.app.QueueUpdateDraw(updateFn)
		}
	}()
	return a.app.Run()
}
