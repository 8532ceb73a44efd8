package prayer

import (
	"math"
	"time"
)

// Window is how far before and after the scheduled minute a prayer may be
// completed. Both ends are inclusive.
const Window = 30

// Kind identifies which status variant holds.
type Kind int

const (
	Unavailable Kind = iota
	Upcoming
	Available
	Missed
	Completed
)

var kindNames = map[Kind]string{
	Unavailable: "unavailable",
	Upcoming:    "upcoming",
	Available:   "available",
	Missed:      "missed",
	Completed:   "completed",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Status is the state of one slot at one instant. Only the fields belonging
// to Kind are meaningful; the rest are zero.
type Status struct {
	Kind Kind

	// Available
	TimeRemainingMinutes int
	MinutesEarly         int
	MinutesLate          int // also set for Missed

	// Upcoming
	MinutesUntilAvailable int
}

func (s Status) CanComplete() bool {
	return s.Kind == Available
}

// CompletionRecord is one entry of the completion history.
type CompletionRecord struct {
	Date   string `json:"date"`
	SlotID string `json:"prayer"`
}

// ComputeStatus decides the status of slotID at now. It is pure: the same
// inputs always give the same Status, and malformed input never fails but
// yields Unavailable.
func ComputeStatus(scheduledTime string, history []CompletionRecord, slotID string, now time.Time) Status {
	if scheduledTime == "" {
		return Status{Kind: Unavailable}
	}
	occurrence, err := Occurrence(scheduledTime, now)
	if err != nil {
		return Status{Kind: Unavailable}
	}

	if CompletedOn(history, slotID, Today(now)) {
		return Status{Kind: Completed}
	}

	diff := int(math.Floor(now.Sub(occurrence).Minutes()))

	switch {
	case diff >= -Window && diff <= Window:
		return Status{
			Kind:                 Available,
			TimeRemainingMinutes: Window - diff,
			MinutesEarly:         max(0, -diff),
			MinutesLate:          max(0, diff),
		}
	case diff > Window:
		return Status{Kind: Missed, MinutesLate: diff}
	default:
		return Status{Kind: Upcoming, MinutesUntilAvailable: -diff - Window}
	}
}

// CanComplete reports whether slotID may be marked done at now.
func CanComplete(scheduledTime string, history []CompletionRecord, slotID string, now time.Time) bool {
	return ComputeStatus(scheduledTime, history, slotID, now).CanComplete()
}

// CompletedOn reports whether history holds a record for slotID on date.
func CompletedOn(history []CompletionRecord, slotID, date string) bool {
	for _, r := range history {
		if r.Date == date && r.SlotID == slotID {
			return true
		}
	}
	return false
}
