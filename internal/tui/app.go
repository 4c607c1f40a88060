// Package tui implements the interactive dashboard: a bubbletea model that
// ingests collector snapshots, tracks the active tab and row selection, and
// renders the aggregated stats view.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"connwatch/internal/stats"
)

// snapshotMsg carries one new snapshot from the collector channel.
type snapshotMsg struct {
	snap stats.Snapshot
}

// collectorClosedMsg signals that the collector channel was closed. The
// collector is the sole data source, so this is fatal.
type collectorClosedMsg struct{}

type keyMap struct {
	PrevTab key.Binding
	NextTab key.Binding
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevTab: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
		NextTab: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// App is the root bubbletea model. It owns all mutable dashboard state; the
// collector goroutine only ever touches the snapshot channel.
type App struct {
	tabs      []*stats.Tab
	window    *stats.Window
	snapshots <-chan stats.Snapshot
	keys      keyMap
	theme     Theme

	tabIndex int
	cursor   int // index into rows, -1 = no selection
	rows     []stats.Row

	width  int
	height int
	err    error
}

// NewApp creates the dashboard model. The window holds snapshot history;
// snapshots is the collector delivery channel.
func NewApp(tabs []*stats.Tab, window *stats.Window, snapshots <-chan stats.Snapshot) App {
	return App{
		tabs:      tabs,
		window:    window,
		snapshots: snapshots,
		keys:      defaultKeyMap(),
		theme:     DefaultTheme(),
		cursor:    -1,
	}
}

// waitSnapshot blocks on the delivery channel for one snapshot.
func waitSnapshot(ch <-chan stats.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return collectorClosedMsg{}
		}
		return snapshotMsg{snap: snap}
	}
}

func (a App) Init() tea.Cmd {
	return waitSnapshot(a.snapshots)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case snapshotMsg:
		a.window.Ingest(msg.snap)
		a.refresh()
		return a, waitSnapshot(a.snapshots)

	case collectorClosedMsg:
		a.err = errors.New("stats collector terminated unexpectedly")
		return a, tea.Quit

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.NextTab):
		if a.tabIndex < len(a.tabs)-1 {
			a.tabIndex++
			a.refresh()
		}

	case key.Matches(msg, a.keys.PrevTab):
		if a.tabIndex > 0 {
			a.tabIndex--
			a.refresh()
		}

	case key.Matches(msg, a.keys.Down):
		if len(a.rows) > 0 {
			if a.cursor < 0 {
				a.cursor = 0
			} else if a.cursor < len(a.rows)-1 {
				a.cursor++
			}
		}

	case key.Matches(msg, a.keys.Up):
		if len(a.rows) > 0 {
			if a.cursor <= 0 {
				a.cursor = 0
			} else {
				a.cursor--
			}
		}
	}
	return a, nil
}

// refresh recomputes the aggregated rows for the active tab from the latest
// snapshot. The selection carries across tab switches but is re-clamped
// against the new row count.
func (a *App) refresh() {
	if latest, ok := a.window.Latest(); ok {
		a.rows = stats.Aggregate(latest, a.tabs[a.tabIndex])
	} else {
		a.rows = nil
	}
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
}

// selectedRow returns the row under the cursor, or nil.
func (a *App) selectedRow() *stats.Row {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return nil
	}
	return &a.rows[a.cursor]
}

// Err returns the fatal application error (collector disconnect), if any.
func (a App) Err() error { return a.err }

func (a App) View() string {
	if a.err != nil {
		return fmt.Sprintf("Error: %v\n", a.err)
	}
	if a.width == 0 || a.height == 0 {
		return "Waiting for stats..."
	}
	return renderDashboard(&a, a.width, a.height)
}
