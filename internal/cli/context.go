package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vigil/internal/app"
	"github.com/sadopc/vigil/internal/config"
	"github.com/sadopc/vigil/internal/prayer"
)

// Context is bound to every command's Run method.
type Context struct {
	App    *app.App
	Config config.Config
	Out    io.Writer
}

var (
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

func toneStyle(t prayer.Tone) lipgloss.Style {
	switch t {
	case prayer.TonePrimary:
		return primaryStyle
	case prayer.ToneSuccess:
		return successStyle
	case prayer.ToneError:
		return errorStyle
	}
	return mutedStyle
}

func timeOrDash(t string) string {
	if t == "" {
		return "--:--"
	}
	return t
}
