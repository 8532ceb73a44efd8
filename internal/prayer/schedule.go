package prayer

import (
	"sort"
	"time"
)

// Definition is a configured prayer slot.
type Definition struct {
	SlotID string
	Name   string
	Time   string // HH:MM, may be empty
}

// SortDefinitions orders defs by time of day. Unparseable times sort as
// midnight; ties keep their order.
func SortDefinitions(defs []Definition) {
	sort.SliceStable(defs, func(i, j int) bool {
		return MinuteOfDay(defs[i].Time) < MinuteOfDay(defs[j].Time)
	})
}

// NextAvailable returns the first definition, in the order given, that is
// either open now or still ahead today.
func NextAvailable(defs []Definition, history []CompletionRecord, now time.Time) (Definition, Status, bool) {
	for _, d := range defs {
		st := ComputeStatus(d.Time, history, d.SlotID, now)
		if st.Kind == Available || st.Kind == Upcoming {
			return d, st, true
		}
	}
	return Definition{}, Status{}, false
}

// NextPrayer returns the first definition whose scheduled minute is after
// now's. Once today's are all past it wraps to the earliest one, which is
// tomorrow's first prayer.
func NextPrayer(defs []Definition, now time.Time) (Definition, bool) {
	if len(defs) == 0 {
		return Definition{}, false
	}
	sorted := make([]Definition, len(defs))
	copy(sorted, defs)
	SortDefinitions(sorted)

	current := now.Hour()*60 + now.Minute()
	for _, d := range sorted {
		if MinuteOfDay(d.Time) > current {
			return d, true
		}
	}
	return sorted[0], true
}
