package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vigil/internal/app"
	"github.com/sadopc/vigil/internal/store"
	"github.com/sadopc/vigil/internal/verse"
)

type versesModel struct {
	app    *app.App
	width  int
	height int

	prayers []store.Prayer
	slotID  string

	pair   [2]verse.Verse
	pinned verse.Assignment
	ok     bool

	drawn    *[2]verse.Verse
	rotation verse.RotationStats
}

func newVersesModel(a *app.App) versesModel {
	return versesModel{app: a, pair: verse.Placeholder}
}

func (v *versesModel) setSize(w, h int) {
	v.width = w
	v.height = h
}

type versesSlotsMsg struct {
	prayers []store.Prayer
}

type rotationMsg struct {
	drawn *[2]verse.Verse
	stats verse.RotationStats
	reset bool
}

func (v versesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		prayers, err := v.app.Store.ListPrayers()
		if err != nil {
			return errStatus(err)
		}
		return versesSlotsMsg{prayers: prayers}
	}
}

func (v versesModel) load(slotID string, redraw bool) tea.Cmd {
	return func() tea.Msg {
		var (
			pair [2]verse.Verse
			err  error
		)
		if redraw {
			pair, err = v.app.RefreshVerses(slotID)
		} else {
			pair, err = v.app.Verses(slotID)
		}
		if err != nil {
			return errStatus(err)
		}
		pinned, ok := v.app.Assignments.Peek(slotID)
		return versesMsg{slotID: slotID, pair: pair, pinned: pinned, ok: ok}
	}
}

func (v versesModel) rotationStats() tea.Cmd {
	return func() tea.Msg {
		return rotationMsg{stats: v.app.Rotation.Stats()}
	}
}

func (v versesModel) index() int {
	for i, p := range v.prayers {
		if p.SlotID == v.slotID {
			return i
		}
	}
	return -1
}

func (v versesModel) current() (store.Prayer, bool) {
	if i := v.index(); i >= 0 {
		return v.prayers[i], true
	}
	return store.Prayer{}, false
}

func (v versesModel) update(msg tea.Msg) (versesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case versesSlotsMsg:
		v.prayers = msg.prayers
		if v.index() < 0 {
			v.slotID = ""
			v.pair = verse.Placeholder
			v.ok = false
			if len(v.prayers) > 0 {
				v.slotID = v.prayers[0].SlotID
			}
		}
		if v.slotID == "" {
			return v, v.rotationStats()
		}
		return v, tea.Batch(v.load(v.slotID, false), v.rotationStats())

	case showVersesMsg:
		v.slotID = msg.slotID
		v.pair = verse.Placeholder
		if len(v.prayers) == 0 {
			// the slot list loads first, then the pair
			return v, v.refresh()
		}
		return v, v.load(msg.slotID, false)

	case versesMsg:
		if msg.slotID != v.slotID {
			return v, nil
		}
		v.pair = msg.pair
		v.pinned = msg.pinned
		v.ok = msg.ok
		return v, nil

	case rotationMsg:
		if msg.drawn != nil || msg.reset {
			v.drawn = msg.drawn
		}
		v.rotation = msg.stats
		return v, nil

	case completedMsg:
		if msg.slotID == v.slotID {
			return v, v.load(v.slotID, false)
		}
		return v, nil

	case prayersChangedMsg:
		return v, v.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			return v.step(-1)
		case key.Matches(msg, keys.Right):
			return v.step(1)
		case key.Matches(msg, keys.Refresh):
			if v.slotID == "" {
				return v, nil
			}
			return v, v.load(v.slotID, true)
		case key.Matches(msg, keys.Draw):
			return v, func() tea.Msg {
				pair := v.app.Rotation.Draw()
				return rotationMsg{drawn: &pair, stats: v.app.Rotation.Stats()}
			}
		case key.Matches(msg, keys.Reset):
			return v, func() tea.Msg {
				v.app.Rotation.Reset()
				return rotationMsg{reset: true, stats: v.app.Rotation.Stats()}
			}
		}
	}
	return v, nil
}

func (v versesModel) step(delta int) (versesModel, tea.Cmd) {
	if len(v.prayers) == 0 {
		return v, nil
	}
	i := (v.index() + delta + len(v.prayers)) % len(v.prayers)
	v.slotID = v.prayers[i].SlotID
	v.pair = verse.Placeholder
	return v, v.load(v.slotID, false)
}

func (v versesModel) view() string {
	w := v.width - 4
	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderPinnedPanel(w),
		v.renderRotationPanel(w),
	)
}

func (v versesModel) renderPinnedPanel(w int) string {
	p, ok := v.current()
	if !ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Verses"),
			mutedStyle.Render("No prayers configured"),
		))
	}

	var tabs []string
	for _, q := range v.prayers {
		if q.SlotID == v.slotID {
			tabs = append(tabs, activeTabStyle.Render(q.Name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(q.Name))
		}
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...), ""}
	lines = append(lines, renderPair(v.pair, w-6)...)

	if v.ok {
		expires := v.pinned.ExpiresAt(p.Time, time.Local)
		status := fmt.Sprintf("Pinned until %s", expires.Format("Mon 02 Jan 15:04"))
		if v.pinned.CompletedAt != nil {
			status += successStyle.Render("  ✓ prayed " + v.pinned.CompletedAt.Local().Format("15:04"))
		}
		lines = append(lines, mutedStyle.Render(status))
	}
	lines = append(lines, "", mutedStyle.Render("  ←/→: prayer  r: new verses"))

	return activePanelStyle.Width(w).Render(strings.Join(lines, "\n"))
}

func (v versesModel) renderRotationPanel(w int) string {
	st := v.rotation
	header := fmt.Sprintf("%s  %s",
		titleStyle.Render("Daily Rotation"),
		highlightStyle.Render(fmt.Sprintf("%d/%d used (%d%%)", st.Used, st.Total, st.PercentUsed)),
	)

	lines := []string{header}
	if st.LastResetDate != "" {
		lines = append(lines, mutedStyle.Render("Last reset "+st.LastResetDate))
	}
	lines = append(lines, "")
	if v.drawn != nil {
		lines = append(lines, renderPair(*v.drawn, w-6)...)
	} else {
		lines = append(lines, mutedStyle.Render("Press d to draw two verses"))
	}
	lines = append(lines, "", mutedStyle.Render("  d: draw  R: reset rotation"))

	return panelStyle.Width(w).Render(strings.Join(lines, "\n"))
}

func renderPair(pair [2]verse.Verse, width int) []string {
	var lines []string
	for _, vs := range pair {
		lines = append(lines,
			verseStyle.Width(max(width, 20)).Render(fmt.Sprintf("%q", vs.Text)),
			referenceStyle.Render("  "+vs.Reference),
			"",
		)
	}
	return lines
}
