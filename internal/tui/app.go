package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vigil/internal/app"
	"github.com/sadopc/vigil/internal/export"
	"github.com/sadopc/vigil/internal/logger"
	"github.com/sadopc/vigil/internal/prayer"
	"github.com/sadopc/vigil/internal/store"
)

// Run starts the TUI on the alternate screen and blocks until it quits.
func Run(a *app.App) error {
	_, err := tea.NewProgram(NewApp(a), tea.WithAltScreen()).Run()
	return err
}

// App is the root Bubble Tea model.
type App struct {
	app    *app.App
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	today   todayModel
	verses  versesModel
	reports reportsModel
	prayers prayersModel

	help    help.Model
	status  string
	isError bool
}

func NewApp(a *app.App) App {
	h := help.New()
	h.ShowAll = false

	home, _ := os.UserHomeDir()
	return App{
		app:        a,
		activeView: viewToday,
		exportDir:  home,
		today:      newTodayModel(a),
		verses:     newVersesModel(a),
		reports:    newReportsModel(a),
		prayers:    newPrayersModel(a),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.today.loadData(),
		a.verses.refresh(),
		tickCmd(),
		minuteCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// minuteCmd fires on wall-clock minute boundaries.
func minuteCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return minuteMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.verses.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.prayers.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A form captures every key.
		if a.prayers.formActive {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewToday
			return a, a.today.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewVerses
			return a, a.verses.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewReports
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewPrayers
			return a, a.prayers.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		var cmd tea.Cmd
		a.today, cmd = a.today.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case minuteMsg:
		var cmd tea.Cmd
		a.today, cmd = a.today.update(msg)
		return a, tea.Batch(minuteCmd(), cmd)

	case todayDataMsg:
		var cmd tea.Cmd
		a.today, cmd = a.today.update(msg)
		return a, cmd

	case versesSlotsMsg, versesMsg, rotationMsg:
		var cmd tea.Cmd
		a.verses, cmd = a.verses.update(msg)
		return a, cmd

	case reportsDataMsg:
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd

	case prayersDataMsg:
		var cmd tea.Cmd
		a.prayers, cmd = a.prayers.update(msg)
		return a, cmd

	case showVersesMsg:
		a.activeView = viewVerses
		var cmd tea.Cmd
		a.verses, cmd = a.verses.update(msg)
		return a, cmd

	case completedMsg:
		a.setStatus(statusMsg{text: fmt.Sprintf("%s completed (+%d pts)", msg.slotID, msg.points)})
		return a, a.broadcast(msg)

	case prayersChangedMsg:
		return a, a.broadcast(msg)

	case statusMsg:
		a.setStatus(msg)
		return a, nil

	case exportDoneMsg:
		a.setStatus(statusMsg{text: fmt.Sprintf("Exported %d completions to %s", msg.count, msg.path)})
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(msg statusMsg) {
	a.status = msg.text
	a.isError = msg.isError
	if msg.isError {
		logger.Warn("tui", "status", msg.text)
	}
}

// broadcast delivers msg to every view so hidden views do not go stale.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds [4]tea.Cmd
	a.today, cmds[0] = a.today.update(msg)
	a.verses, cmds[1] = a.verses.update(msg)
	a.reports, cmds[2] = a.reports.update(msg)
	a.prayers, cmds[3] = a.prayers.update(msg)
	return tea.Batch(cmds[:]...)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewVerses:
		a.verses, cmd = a.verses.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewPrayers:
		a.prayers, cmd = a.prayers.update(msg)
	}
	return a, cmd
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewToday:
		return a.today.loadData()
	case viewVerses:
		return a.verses.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewPrayers:
		return a.prayers.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
	case viewVerses:
		content = a.verses.view()
	case viewReports:
		content = a.reports.view()
	case viewPrayers:
		content = a.prayers.view()
	}

	contentHeight := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("vigil")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Countdown indicator
	next := ""
	if c := a.today.countdown; c.state == countdownOpen {
		next = successStyle.Render(" ● " + c.name + " " + formatDuration(c.remaining))
	}

	left := footerStyle.Render(helpView)
	right := next + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Export Format"), "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		completions, err := a.app.Store.ListCompletions(store.CompletionFilter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		names, err := a.app.Names()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		base := filepath.Join(a.exportDir, "vigil-export-"+a.app.Now().Format(prayer.DateFormat))

		var path string
		if format == 0 {
			path = base + ".csv"
			if err := export.ToCSV(completions, names, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = base + ".json"
			if err := export.ToJSON(completions, names, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		logger.Info("exported completions", "path", path, "count", len(completions))
		return exportDoneMsg{path: path, count: len(completions)}
	}
}
