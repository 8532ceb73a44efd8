package verse

// Category groups verses by the time of day they suit.
type Category string

const (
	Morning Category = "morning"
	Midday  Category = "midday"
	Evening Category = "evening"
	Night   Category = "night"
	General Category = "general"
)

// Categories lists every category in pool order.
var Categories = []Category{Morning, Midday, Evening, Night, General}

type Verse struct {
	Text      string   `json:"text"`
	Reference string   `json:"reference"`
	Category  Category `json:"category,omitempty"`
}

// Same compares by content; Category is not part of a verse's identity.
func (v Verse) Same(o Verse) bool {
	return v.Text == o.Text && v.Reference == o.Reference
}

// Placeholder is shown while verse text has not been loaded yet.
var Placeholder = [2]Verse{
	{Text: "Verse is loading...", Reference: "Loading..."},
	{Text: "Verse is loading...", Reference: "Loading..."},
}

// Fallback is returned when no pool can supply a pair.
var Fallback = [2]Verse{
	{Text: "Be still, and know that I am God.", Reference: "Psalm 46:10", Category: General},
	{Text: "The Lord is my shepherd, I lack nothing.", Reference: "Psalm 23:1", Category: General},
}

// Pool is read-only verse data keyed by category.
type Pool map[Category][]Verse

// All flattens the pool in category order.
func (p Pool) All() []Verse {
	var all []Verse
	for _, c := range Categories {
		all = append(all, p[c]...)
	}
	return all
}

// For returns the verses of c, or the general ones when c has none.
func (p Pool) For(c Category) []Verse {
	if vs := p[c]; len(vs) > 0 {
		return vs
	}
	return p[General]
}

// CategoryForTime buckets a scheduled "HH:MM" into a category.
func CategoryForTime(scheduledTime string) Category {
	h, ok := hourOf(scheduledTime)
	if !ok {
		return General
	}
	switch {
	case h >= 5 && h < 10:
		return Morning
	case h >= 10 && h < 16:
		return Midday
	case h >= 16 && h < 20:
		return Evening
	case h >= 20 || h < 5:
		return Night
	}
	return General
}
