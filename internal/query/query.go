package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/robottwo/trophy/internal/trophy"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// Status is the status filter applied last in a query
type Status string

const (
	StatusNone       Status = ""
	StatusPriority   Status = "priority"
	StatusFavorite   Status = "favorite"
	StatusIncomplete Status = "incomplete"
	StatusCompleted  Status = "completed"
)

// Statuses lists every accepted filter name
var Statuses = []Status{StatusPriority, StatusFavorite, StatusIncomplete, StatusCompleted}

// ParseStatus accepts a filter name; "" and "none" mean no filter.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return StatusNone, nil
	}
	for _, status := range Statuses {
		if string(status) == s {
			return status, nil
		}
	}
	return StatusNone, trophy.Invalid("filter", "unknown filter %q (expected one of none, priority, favorite, incomplete, completed)", s)
}

// Criteria selects a subsequence of the achievement list
type Criteria struct {
	Scope  string
	Search string
	Status Status
}

// Filter applies scope, then search, then status. Order is preserved.
func Filter(list []trophy.Achievement, c Criteria) []trophy.Achievement {
	filtered := InScope(list, c.Scope)

	if search := strings.ToLower(c.Search); search != "" {
		filtered = lo.Filter(filtered, func(a trophy.Achievement, _ int) bool {
			return strings.Contains(strings.ToLower(a.Name), search) ||
				strings.Contains(strings.ToLower(a.Description), search)
		})
	}

	switch c.Status {
	case StatusPriority:
		filtered = lo.Filter(filtered, func(a trophy.Achievement, _ int) bool { return a.IsPriority() })
	case StatusFavorite:
		filtered = lo.Filter(filtered, func(a trophy.Achievement, _ int) bool { return a.Favorite })
	case StatusIncomplete:
		filtered = lo.Filter(filtered, func(a trophy.Achievement, _ int) bool { return !a.Achieved })
	case StatusCompleted:
		filtered = lo.Filter(filtered, func(a trophy.Achievement, _ int) bool { return a.Achieved })
	}

	return filtered
}

// InScope returns the achievements of one game, or a copy of all of them
// when scope is trophy.AllGames or empty.
func InScope(list []trophy.Achievement, scope string) []trophy.Achievement {
	if scope == "" || scope == trophy.AllGames {
		return trophy.Clone(list)
	}
	return lo.Filter(list, func(a trophy.Achievement, _ int) bool {
		return a.Game == scope
	})
}

// IndexesInScope returns the positions in list of the achievements in scope
func IndexesInScope(list []trophy.Achievement, scope string) []int {
	indexes := make([]int, 0, len(list))
	for i, a := range list {
		if scope == "" || scope == trophy.AllGames || a.Game == scope {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// GameStat is the derived per-game aggregate
type GameStat struct {
	Game      string
	Total     int
	Completed int
}

func (g GameStat) Percentage() int {
	if g.Total == 0 {
		return 0
	}
	return int(float64(g.Completed)/float64(g.Total)*100 + 0.5)
}

func (g GameStat) String() string {
	return fmt.Sprintf("%s (%d/%d)", g.Game, g.Completed, g.Total)
}

// GameStats groups achievements by display game, sorted alphabetically
func GameStats(list []trophy.Achievement) []GameStat {
	groups := lo.GroupBy(list, func(a trophy.Achievement) string {
		return a.DisplayGame()
	})

	stats := make([]GameStat, 0, len(groups))
	for game, achievements := range groups {
		stats = append(stats, GameStat{
			Game:      game,
			Total:     len(achievements),
			Completed: lo.CountBy(achievements, func(a trophy.Achievement) bool { return a.Achieved }),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Game < stats[j].Game
	})
	return stats
}

// HasGame reports whether any achievement belongs to game
func HasGame(list []trophy.Achievement, game string) bool {
	return lo.ContainsBy(list, func(a trophy.Achievement) bool {
		return a.Game == game
	})
}

// Summary counts a filtered view
type Summary struct {
	Total     int
	Completed int
}

func Summarize(list []trophy.Achievement) Summary {
	return Summary{
		Total:     len(list),
		Completed: lo.CountBy(list, func(a trophy.Achievement) bool { return a.Achieved }),
	}
}

type nameSource []trophy.Achievement

func (s nameSource) String(i int) string { return s[i].Name }

func (s nameSource) Len() int { return len(s) }

// Suggest fuzzy-matches query against achievement names, best match first
func Suggest(list []trophy.Achievement, query string, limit int) []trophy.Achievement {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, nameSource(list))
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]trophy.Achievement, 0, len(matches))
	for _, m := range matches {
		out = append(out, list[m.Index])
	}
	return out
}
