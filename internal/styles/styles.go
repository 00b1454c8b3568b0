package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#26de81"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#eb3b5a"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fed330"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tabStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("250"))
	activeTab    = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#04B575"))
)

// Message kinds, matching the notification colors
func SUCCESS(s string) string { return successStyle.Render(s) }
func ERROR(s string) string   { return errorStyle.Render(s) }
func INFO(s string) string    { return infoStyle.Render(s) }
func WARNING(s string) string { return warningStyle.Render(s) }

func HEADER(s string) string { return headerStyle.Render(s) }
func DIM(s string) string    { return dimStyle.Render(s) }

// TAB renders a game tab; the active one is highlighted
func TAB(s string, active bool) string {
	if active {
		return activeTab.Render(s)
	}
	return tabStyle.Render(s)
}
