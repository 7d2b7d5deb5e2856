package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// List rows
	Row = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	// Task states
	TaskOpen = lipgloss.NewStyle()

	TaskDone = lipgloss.NewStyle().
			Foreground(Muted).
			Strikethrough(true)

	CheckboxOpen = lipgloss.NewStyle().
			Foreground(Warning)

	CheckboxDone = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Progress bar
	ProgressFilled = lipgloss.NewStyle().Foreground(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Foreground(Muted)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// ProgressColor returns the color for a completion percentage
func ProgressColor(progress float64) lipgloss.Color {
	switch {
	case progress >= 100:
		return Secondary
	case progress >= 50:
		return lipgloss.Color("#60A5FA") // Blue
	case progress > 0:
		return Warning
	default:
		return Muted
	}
}

// ProgressBar renders a bar of the given width for a percentage
func ProgressBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(progress / 100 * float64(width))
	filled = max(0, min(filled, width))

	return ProgressFilled.Foreground(ProgressColor(progress)).Render(strings.Repeat("█", filled)) +
		ProgressEmpty.Render(strings.Repeat("░", width-filled))
}
