package store

import (
	"time"

	"github.com/sadopc/vigil/internal/prayer"
)

type Prayer struct {
	ID        int64
	SlotID    string
	Name      string
	Time      string // HH:MM, empty when unscheduled
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Definition converts p to the engine's view of a slot.
func (p Prayer) Definition() prayer.Definition {
	return prayer.Definition{SlotID: p.SlotID, Name: p.Name, Time: p.Time}
}

type Completion struct {
	ID          string
	SlotID      string
	Date        string // YYYY-MM-DD, local to the completion
	CompletedAt time.Time
	Points      int
}

// CompletionFilter narrows ListCompletions. Dates are inclusive From,
// exclusive To.
type CompletionFilter struct {
	SlotID string
	From   string
	To     string
	Limit  int
}

// DailyCount is the number of completions of one slot on one day.
type DailyCount struct {
	Date   string
	SlotID string
	Count  int
}
