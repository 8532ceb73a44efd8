package prayer

import "fmt"

// Tone is the color family a status is drawn with.
type Tone int

const (
	ToneMuted Tone = iota
	TonePrimary
	ToneSuccess
	ToneError
)

func ToneOf(k Kind) Tone {
	switch k {
	case Completed:
		return ToneSuccess
	case Available:
		return TonePrimary
	case Missed:
		return ToneError
	default:
		return ToneMuted
	}
}

// urgentMinutes is when an open window starts counting down.
const urgentMinutes = 5

// Label renders s as a short badge. points is shown on completed prayers
// when positive.
func Label(s Status, points int) string {
	switch s.Kind {
	case Completed:
		if points > 0 {
			return fmt.Sprintf("✅ Completed (+%dpts)", points)
		}
		return "✅ Completed"
	case Available:
		switch {
		case s.TimeRemainingMinutes <= urgentMinutes:
			return fmt.Sprintf("⏰ %dmin left", s.TimeRemainingMinutes)
		case s.MinutesEarly > 0:
			return fmt.Sprintf("🟢 %dmin early", s.MinutesEarly)
		case s.MinutesLate > 0:
			return fmt.Sprintf("🟢 %dmin after", s.MinutesLate)
		}
		return "🟢 Available Now"
	case Missed:
		return "🔴 MISSED"
	case Upcoming:
		if s.MinutesUntilAvailable <= 15 {
			return fmt.Sprintf("⏳ %dmin too early", s.MinutesUntilAvailable)
		}
		return "⏳ Too Early"
	default:
		return "⏸️ Unavailable"
	}
}

// FormatMinutes renders a minute count as "45min", "1h 5min" or "2h".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
