package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vinser/pathbot/internal/notify"
)

var (
	// Page styles
	TopPattern = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))            // Pinkish-reddish purple
	Title      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("228")) // Bright yellow
	Content    = lipgloss.NewStyle()
	Footer     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Room panel
	Description = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	RoomMessage = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("117")) // Light blue
	Label       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ExitOpen    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")) // Green
	ExitClosed  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	Compass     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")) // Orange
	Finished    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")) // Bright yellow
	Spinner     = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))

	// Map glyphs
	MapRoom    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	MapPassage = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	MapCurrent = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	MapStart   = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	MapExit    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
)

var notificationStyles = map[notify.Level]lipgloss.Style{
	notify.Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("117")), // Light blue
	notify.Success: lipgloss.NewStyle().Foreground(lipgloss.Color("82")),  // Green
	notify.Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // Orange
	notify.Danger:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
}

// Notification returns the style for a notification level.
func Notification(l notify.Level) lipgloss.Style {
	if s, ok := notificationStyles[l]; ok {
		return s
	}
	return Content
}
