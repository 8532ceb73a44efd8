package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vigil/internal/app"
	"github.com/sadopc/vigil/internal/prayer"
)

type todayModel struct {
	app    *app.App
	width  int
	height int

	rows      []app.Row
	total     int
	cursor    int
	countdown countdownModel
}

func newTodayModel(a *app.App) todayModel {
	return todayModel{app: a}
}

func (d *todayModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type todayDataMsg struct {
	rows  []app.Row
	next  app.Row
	ok    bool
	total int
}

func (d todayModel) loadData() tea.Cmd {
	return func() tea.Msg {
		rows, err := d.app.Today()
		if err != nil {
			return errStatus(err)
		}
		next, ok, err := d.app.Next()
		if err != nil {
			return errStatus(err)
		}
		total, err := d.app.Store.TotalPoints()
		if err != nil {
			return errStatus(err)
		}
		return todayDataMsg{rows: rows, next: next, ok: ok, total: total}
	}
}

func (d todayModel) selected() (app.Row, bool) {
	if d.cursor < 0 || d.cursor >= len(d.rows) {
		return app.Row{}, false
	}
	return d.rows[d.cursor], true
}

func (d todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todayDataMsg:
		d.rows = msg.rows
		d.total = msg.total
		d.countdown.set(msg.next, msg.ok, d.app.Now())
		if d.cursor >= len(d.rows) {
			d.cursor = max(0, len(d.rows)-1)
		}
		return d, nil

	case tickMsg:
		if d.countdown.tick(d.app.Now()) {
			return d, d.loadData()
		}
		return d, nil

	case minuteMsg, prayersChangedMsg:
		return d, d.loadData()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.rows)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Complete):
			return d.complete()
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Verses):
			if row, ok := d.selected(); ok {
				return d, func() tea.Msg { return showVersesMsg{slotID: row.Prayer.SlotID} }
			}
		}
	}
	return d, nil
}

func (d todayModel) complete() (todayModel, tea.Cmd) {
	row, ok := d.selected()
	if !ok {
		return d, nil
	}
	c, err := d.app.Complete(row.Prayer.SlotID)
	if err != nil {
		return d, func() tea.Msg { return errStatus(err) }
	}
	return d, tea.Batch(
		d.loadData(),
		func() tea.Msg { return completedMsg{slotID: c.SlotID, points: c.Points} },
	)
}

func (d todayModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4
	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderCountdownPanel(contentWidth),
		d.renderPrayersPanel(contentWidth),
	)
}

func (d todayModel) renderCountdownPanel(w int) string {
	c := d.countdown
	if c.state == countdownIdle {
		content := lipgloss.JoinVertical(lipgloss.Center,
			countdownStyle.Width(w-6).Render("--:--:--"),
			mutedStyle.Render(c.caption()),
			mutedStyle.Render("Press 4 to add prayer times"),
		)
		return panelStyle.Width(w).Render(content)
	}

	style := countdownStyle
	switch c.state {
	case countdownOpen:
		style = countdownOpenStyle
	case countdownDone:
		style = countdownDoneStyle
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		style.Width(w-6).Render(formatDuration(c.remaining)),
		highlightStyle.Render(c.caption()),
	)
	if c.state == countdownOpen {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (d todayModel) renderPrayersPanel(w int) string {
	done := 0
	for _, r := range d.rows {
		if r.Status.Kind == prayer.Completed {
			done++
		}
	}
	title := titleStyle.Render(d.app.Now().Format("Monday, 2 Jan"))
	summary := highlightStyle.Render(fmt.Sprintf("%d/%d", done, len(d.rows)))
	points := accentStyle.Render(fmt.Sprintf("%d pts", d.total))
	header := fmt.Sprintf("%s  %s  %s", title, summary, points)

	if len(d.rows) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No prayers configured"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var lines []string
	lines = append(lines, header)
	for i, r := range d.rows {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		t := r.Prayer.Time
		if t == "" {
			t = "--:--"
		}
		label := toneStyle(prayer.ToneOf(r.Status.Kind)).Render(r.Label(d.app.Points))
		lines = append(lines, fmt.Sprintf("%s  %s",
			style.Render(fmt.Sprintf("%s%5s  %-18s", cursor, t, r.Prayer.Name)),
			label,
		))
	}
	lines = append(lines, "")
	lines = append(lines, mutedStyle.Render("  c: complete  enter: verses"))

	return panelStyle.Width(w).Render(strings.Join(lines, "\n"))
}
