// Package textsync reconciles progress against free-form text copied from an
// achievement-tracking web page. It works on string heuristics only: an
// achievement is located by name, and the text right after the name is
// searched for an unlock date or a "current / target" counter.
package textsync

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ExcerptLength bounds how far past an achievement name its status is
// looked for, in characters.
const ExcerptLength = 300

// conditionalHint marks hint text ("... once unlocked you gain ...") rather
// than an actual unlock record.
const conditionalHint = "once unlocked"

const months = "jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec|" +
	"january|february|march|april|june|july|august|september|october|november|december"

// space also covers the no-break and typographic spaces found in copied web text
const space = `[\s\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	completionPattern = regexp.MustCompile(
		`(?i)(unlocked|earned)` + space + `+(\d+|` + months + `)` + space + `+(\d+|` + months + `)`,
	)
	progressPattern = regexp.MustCompile(`(\d+)` + space + `*/` + space + `*(\d+)`)
)

// Match is what the text says about a single achievement
type Match struct {
	Found       bool
	Completed   bool
	Progress    int
	HasProgress bool
}

// MatchName looks up name in text. Both are compared case-insensitively.
func MatchName(text, name string) Match {
	return matchLower(strings.ToLower(text), strings.ToLower(name))
}

func matchLower(lowerText, lowerName string) Match {
	excerpt, ok := Excerpt(lowerText, lowerName)
	if !ok {
		return Match{}
	}

	m := Match{Found: true, Completed: DetectCompletion(excerpt)}
	if !m.Completed {
		m.Progress, m.HasProgress = DetectProgress(excerpt)
	}
	return m
}

// Excerpt returns the window of text starting at the first occurrence of
// name, at most ExcerptLength characters long. An empty name never matches.
func Excerpt(text, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	idx := strings.Index(text, name)
	if idx < 0 {
		return "", false
	}

	rest := text[idx:]
	count := 0
	for i := range rest {
		if count == ExcerptLength {
			return rest[:i], true
		}
		count++
	}
	return rest, true
}

// DetectCompletion reports whether excerpt records an unlock: "unlocked" or
// "earned" followed by two date tokens (a number or a month name, in either
// order). Conditional hint text suppresses the match.
func DetectCompletion(excerpt string) bool {
	if strings.Contains(strings.ToLower(excerpt), conditionalHint) {
		return false
	}
	return completionPattern.MatchString(excerpt)
}

// DetectProgress finds the first "<current> / <target>" counter in excerpt
// and converts it to a percentage. The result is capped at 99 because only
// an unlock can complete an achievement.
func DetectProgress(excerpt string) (int, bool) {
	m := progressPattern.FindStringSubmatch(excerpt)
	if m == nil {
		return 0, false
	}

	current, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	target, err := strconv.ParseFloat(m[2], 64)
	if err != nil || target <= 0 {
		return 0, false
	}

	progress := math.Round(current / target * 100)
	if progress > 99 {
		progress = 99
	}
	return int(progress), true
}

// LooksLikeTrackerText reports whether pasted text is probably an
// achievement page copied from a tracking site.
func LooksLikeTrackerText(text string) bool {
	if utf8.RuneCountInString(text) <= ExcerptLength {
		return false
	}
	return strings.Contains(text, "Unlocked") ||
		strings.Contains(text, "earned") ||
		strings.Contains(text, "@")
}

// LooksLikeJSON reports whether pasted text is probably a JSON export
func LooksLikeJSON(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return false
	}
	return utf8.RuneCountInString(text) > 50
}
