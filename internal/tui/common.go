package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/vigil/internal/verse"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewVerses
	viewReports
	viewPrayers
)

var viewNames = []string{"Today", "Verses", "Reports", "Prayers"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// minuteMsg re-evaluates every prayer status.
type minuteMsg time.Time

type completedMsg struct {
	slotID string
	points int
}

// showVersesMsg switches to the verses view for one slot.
type showVersesMsg struct {
	slotID string
}

type versesMsg struct {
	slotID string
	pair   [2]verse.Verse
	pinned verse.Assignment
	ok     bool
}

type prayersChangedMsg struct{}

type exportDoneMsg struct {
	path  string
	count int
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func errStatus(err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
}
