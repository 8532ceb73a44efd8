package tui

import (
	"time"

	"github.com/sadopc/vigil/internal/app"
	"github.com/sadopc/vigil/internal/prayer"
)

type countdownState int

const (
	countdownIdle    countdownState = iota // no scheduled prayer
	countdownWaiting                       // target is when the window opens
	countdownOpen                          // target is when the window closes
	countdownDone                          // today is finished; target is tomorrow's first window
)

// countdownModel follows the next prayer returned by app.Next.
type countdownModel struct {
	state     countdownState
	slotID    string
	name      string
	target    time.Time
	remaining time.Duration
}

func (c *countdownModel) set(row app.Row, ok bool, now time.Time) {
	window := prayer.Window * time.Minute
	c.slotID = row.Prayer.SlotID
	c.name = row.Prayer.Name

	day := now
	if !ok {
		day = now.AddDate(0, 0, 1)
	}
	occurrence, err := prayer.Occurrence(row.Prayer.Time, day)
	if row.Prayer.SlotID == "" || err != nil {
		*c = countdownModel{}
		return
	}

	switch {
	case !ok:
		c.state = countdownDone
		c.target = occurrence.Add(-window)
	case row.Status.Kind == prayer.Available:
		c.state = countdownOpen
		// diff is floored, so the last open minute runs until window+1m.
		c.target = occurrence.Add(window + time.Minute)
	default:
		c.state = countdownWaiting
		c.target = occurrence.Add(-window)
	}
	c.tick(now)
}

// tick reports whether the target passed, meaning statuses are stale.
func (c *countdownModel) tick(now time.Time) bool {
	if c.state == countdownIdle {
		return false
	}
	c.remaining = c.target.Sub(now)
	return c.remaining <= 0
}

func (c countdownModel) caption() string {
	switch c.state {
	case countdownWaiting:
		return c.name + " opens in"
	case countdownOpen:
		return c.name + " closes in"
	case countdownDone:
		return "Done for today. " + c.name + " opens in"
	}
	return "No scheduled prayers"
}
