// Package report renders achievement progress as plain text for sharing and
// as styled terminal output for the CLI.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/robottwo/trophy/internal/trophy"
)

const (
	Title  = "🏆 STEAM TROPHY HUNTER - PROGRESS REPORT"
	Footer = "Created with Steam Trophy Hunter"

	// GeneratedLayout formats the report timestamp
	GeneratedLayout = "1/2/2006, 3:04:05 PM"
)

type gameGroup struct {
	name         string
	completed    int
	achievements []trophy.Achievement
}

// Build writes the progress report for list. Games appear in the order they
// are first seen.
func Build(list []trophy.Achievement, now time.Time) string {
	var order []string
	groups := make(map[string]*gameGroup)
	for _, a := range list {
		name := a.DisplayGame()
		g, ok := groups[name]
		if !ok {
			g = &gameGroup{name: name}
			groups[name] = g
			order = append(order, name)
		}
		if a.Achieved {
			g.completed++
		}
		g.achievements = append(g.achievements, a)
	}

	var sb strings.Builder
	sb.WriteString(Title + "\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, name := range order {
		g := groups[name]
		total := len(g.achievements)
		percentage := int(math.Round(float64(g.completed) / float64(total) * 100))

		sb.WriteString(fmt.Sprintf("🎮 %s\n", g.name))
		sb.WriteString(fmt.Sprintf("   Progress: %d/%d (%d%%)\n", g.completed, total, percentage))
		sb.WriteString("   Achievements:\n")
		for _, a := range g.achievements {
			sb.WriteString(fmt.Sprintf("   %s %s %s%s (%s%%)\n",
				StatusGlyph(a), a.Name, PriorityGlyph(a.Priority), FavoriteGlyph(a), FormatPercentage(a.GlobalPercentage)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Generated: %s\n", now.Format(GeneratedLayout)))
	sb.WriteString(Footer)
	return sb.String()
}

func StatusGlyph(a trophy.Achievement) string {
	if a.Achieved {
		return "✅"
	}
	return "⏳"
}

func PriorityGlyph(p trophy.Priority) string {
	switch p {
	case trophy.PriorityHigh:
		return "🔥"
	case trophy.PriorityMedium:
		return "⚡"
	default:
		return "📝"
	}
}

func FavoriteGlyph(a trophy.Achievement) string {
	if a.Favorite {
		return "⭐"
	}
	return ""
}

// FormatPercentage prints the shortest decimal form, e.g. 12.5 or 95
func FormatPercentage(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CopyToClipboard puts text on the system clipboard
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not available on this system")
	}
	return clipboard.WriteAll(text)
}

// ReadClipboard returns the current clipboard text
func ReadClipboard() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("clipboard is not available on this system")
	}
	return clipboard.ReadAll()
}
