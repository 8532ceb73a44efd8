package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vigil/internal/app"
	"github.com/sadopc/vigil/internal/prayer"
	"github.com/sadopc/vigil/internal/store"
)

type reportMode int

const (
	reportDaily reportMode = iota
	reportWeekly
)

// slotColors is cycled over prayers in schedule order.
var slotColors = []lipgloss.Color{
	colorPrimary, colorSecondary, colorWarning, colorAccent, colorHighlight, colorSuccess,
}

type reportsModel struct {
	app    *app.App
	width  int
	height int

	mode    reportMode
	counts  []store.DailyCount
	prayers []store.Prayer
	offset  int // weeks or 7-day blocks back from today

	chart barchart.Model
}

func newReportsModel(a *app.App) reportsModel {
	return reportsModel{
		app:   a,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	counts  []store.DailyCount
	prayers []store.Prayer
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		counts, err := r.app.Store.DailyCounts(from.Format(prayer.DateFormat), to.Format(prayer.DateFormat))
		if err != nil {
			return errStatus(err)
		}
		prayers, _ := r.app.Store.ListPrayers()
		return reportsDataMsg{counts: counts, prayers: prayers}
	}
}

func (r reportsModel) dateRange() (time.Time, time.Time) {
	now := r.app.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch r.mode {
	case reportWeekly:
		weekday := today.Weekday()
		if weekday == time.Sunday {
			weekday = 7
		}
		startOfWeek := today.AddDate(0, 0, -int(weekday-time.Monday))
		startOfWeek = startOfWeek.AddDate(0, 0, -7*r.offset)
		return startOfWeek, startOfWeek.AddDate(0, 0, 7)
	default:
		end := today.AddDate(0, 0, 1-7*r.offset)
		return end.AddDate(0, 0, -7), end
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.counts = msg.counts
		r.prayers = msg.prayers
		r.buildChart()
		return r, nil

	case completedMsg, prayersChangedMsg:
		return r, r.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		case key.Matches(msg, keys.Mode):
			if r.mode == reportDaily {
				r.mode = reportWeekly
			} else {
				r.mode = reportDaily
			}
			r.offset = 0
			return r, r.refresh()
		}
	}
	return r, nil
}

// slotStyle colors a slot by its schedule position; removed slots are muted.
func (r reportsModel) slotStyle(slotID string) lipgloss.Style {
	for i, p := range r.prayers {
		if p.SlotID == slotID {
			return lipgloss.NewStyle().Foreground(slotColors[i%len(slotColors)])
		}
	}
	return lipgloss.NewStyle().Foreground(colorSubtle)
}

func (r reportsModel) slotName(slotID string) string {
	for _, p := range r.prayers {
		if p.SlotID == slotID {
			return p.Name
		}
	}
	return slotID
}

func (r *reportsModel) buildChart() {
	chartWidth := max(r.width-8, 20)
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(prayer.DateFormat)

		var values []barchart.BarValue
		for _, c := range r.counts {
			if c.Date == date {
				values = append(values, barchart.BarValue{
					Name:  r.slotName(c.SlotID),
					Value: float64(c.Count),
					Style: r.slotStyle(c.SlotID),
				})
			}
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  d.Format("Mon 02"),
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	dailyTab := inactiveTabStyle.Render("Daily")
	weeklyTab := inactiveTabStyle.Render("Weekly")
	if r.mode == reportDaily {
		dailyTab = activeTabStyle.Render("Daily")
	} else {
		weeklyTab = activeTabStyle.Render("Weekly")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, dailyTab, weeklyTab)

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs, "  ", dateLabel,
	)

	nav := mutedStyle.Render("  ←/→: navigate  m: switch mode")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderLegend(), "", r.renderSummaryTable(w), "", nav,
		),
	)
}

// renderSummaryTable shows, per prayer, on how many days of the range it
// was completed.
func (r reportsModel) renderSummaryTable(w int) string {
	if len(r.counts) == 0 {
		return mutedStyle.Render("  No completions in this period")
	}

	from, to := r.dateRange()
	days := int(to.Sub(from).Hours()/24 + 0.5)

	perSlot := make(map[string]int)
	var order []string
	for _, c := range r.counts {
		if _, ok := perSlot[c.SlotID]; !ok {
			order = append(order, c.SlotID)
		}
		perSlot[c.SlotID] += c.Count
	}
	for _, p := range r.prayers {
		if _, ok := perSlot[p.SlotID]; !ok {
			order = append(order, p.SlotID)
		}
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %6s %6s %8s", "Prayer", "Done", "Rate", "Points")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 44))))

	total := 0
	for _, slot := range order {
		n := perSlot[slot]
		total += n
		dot := r.slotStyle(slot).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-18s %6s %5d%% %8d",
			dot, r.slotName(slot), fmt.Sprintf("%d/%d", n, days), n*100/days, n*r.app.Points,
		))
	}
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %-20s %6d %6s %8d", "Total", total, "", total*r.app.Points))

	return strings.Join(rows, "\n")
}

func (r reportsModel) renderLegend() string {
	var items []string
	for _, p := range r.prayers {
		dot := r.slotStyle(p.SlotID).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, p.Name))
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "  ")
}
