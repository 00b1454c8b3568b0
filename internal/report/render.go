package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/robottwo/trophy/internal/query"
	"github.com/robottwo/trophy/internal/styles"
	"github.com/robottwo/trophy/internal/trophy"
)

const (
	barWidth  = 20
	nameWidth = 28
	gameWidth = 16
)

// ProgressBar draws pct (0-100) as a fixed-width bar
func ProgressBar(pct int, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := pct * width / 100
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// Fit truncates or pads s to exactly width terminal cells
func Fit(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// Tabs renders the game selector: an "All Games" tab followed by one tab per
// game, with the active scope highlighted.
func Tabs(list []trophy.Achievement, scope string) string {
	if len(list) == 0 {
		return ""
	}

	tabs := []string{styles.TAB(fmt.Sprintf("🏆 All Games %d", len(list)), scope == trophy.AllGames || scope == "")}
	for _, stat := range query.GameStats(list) {
		tabs = append(tabs, styles.TAB(stat.String(), stat.Game == scope))
	}
	return strings.Join(tabs, " ")
}

// Stats renders the totals line for the current view
func Stats(view []trophy.Achievement) string {
	s := query.Summarize(view)
	rate := 0
	if s.Total > 0 {
		rate = s.Completed * 100 / s.Total
	}
	return styles.DIM(fmt.Sprintf("Total: %s  Completed: %s  (%d%%)",
		humanize.Comma(int64(s.Total)), humanize.Comma(int64(s.Completed)), rate))
}

// Table renders one entry per achievement, descriptions wrapped to width.
// Completed achievements always show full progress.
func Table(view []trophy.Achievement, width int) string {
	if len(view) == 0 {
		return styles.DIM("No achievements match your search") + "\n"
	}
	if width < 40 {
		width = 40
	}

	var sb strings.Builder
	for _, a := range view {
		progress := a.Progress
		if a.Achieved {
			progress = 100
		}

		bar := ProgressBar(progress, barWidth)
		if a.Achieved {
			bar = styles.SUCCESS(bar)
		}

		line := fmt.Sprintf("%s %s %s %s %3d%% %s%s",
			StatusGlyph(a),
			Fit(a.Name, nameWidth),
			styles.DIM(Fit(a.DisplayGame(), gameWidth)),
			bar,
			progress,
			PriorityGlyph(a.Priority),
			FavoriteGlyph(a),
		)
		sb.WriteString(line + "\n")

		meta := fmt.Sprintf("[%s] %s%% players · %s", a.ID, FormatPercentage(a.GlobalPercentage), a.Rarity)
		body := strings.TrimSpace(a.Description)
		if body != "" {
			body += "\n"
		}
		body += meta
		sb.WriteString(styles.DIM(indent.String(wordwrap.String(body, width-3), 3)) + "\n")
	}
	return sb.String()
}
