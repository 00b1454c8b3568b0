package trophy

import "math"

// Priority is how urgently the user wants to chase an achievement
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rarity is a qualitative bucket derived from the global unlock percentage
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityEpic     Rarity = "epic"
)

const (
	// AllGames is the scope sentinel meaning "no game filter"
	AllGames = "all"

	// UnknownGame is the display bucket for achievements without a game
	UnknownGame = "Unknown Game"

	DefaultIcon = "🏆"
)

// Achievement is a trackable milestone within a game
type Achievement struct {
	ID               string   `json:"id"`
	Game             string   `json:"game"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Icon             string   `json:"icon"`
	Achieved         bool     `json:"achieved"`
	Progress         int      `json:"progress"`
	Priority         Priority `json:"priority"`
	Favorite         bool     `json:"favorite"`
	GlobalPercentage float64  `json:"globalPercentage"`
	Rarity           Rarity   `json:"rarity"`
	GameIcon         string   `json:"gameIcon"`
}

// DisplayGame returns the game name used for grouping and display
func (a Achievement) DisplayGame() string {
	if a.Game == "" {
		return UnknownGame
	}
	return a.Game
}

// IsPriority reports whether the achievement is flagged medium or high
func (a Achievement) IsPriority() bool {
	return a.Priority == PriorityHigh || a.Priority == PriorityMedium
}

// SetCompleted marks the achievement done or not done, keeping progress in step.
func (a *Achievement) SetCompleted(done bool) {
	a.Achieved = done
	if done {
		a.Progress = 100
	} else {
		a.Progress = 0
	}
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Valid reports whether r is one of the known rarities
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic:
		return true
	}
	return false
}

// RarityForPercentage buckets a global unlock percentage.
func RarityForPercentage(globalPercentage float64) Rarity {
	switch {
	case globalPercentage < 5:
		return RarityEpic
	case globalPercentage < 15:
		return RarityRare
	case globalPercentage < 40:
		return RarityUncommon
	default:
		return RarityCommon
	}
}

// ClampProgress rounds and bounds a progress value to 0..100
func ClampProgress(progress float64) int {
	if math.IsNaN(progress) || progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return int(math.Round(progress))
}

// Normalize applies ingestion defaults: progress is clamped, an unknown
// priority becomes medium and a missing rarity is derived from the global
// percentage. Display fields are left untouched.
func Normalize(a Achievement) Achievement {
	a.Progress = ClampProgress(float64(a.Progress))
	if !a.Priority.Valid() {
		a.Priority = PriorityMedium
	}
	if a.Rarity == "" {
		a.Rarity = RarityForPercentage(a.GlobalPercentage)
	}
	return a
}

// NormalizeAll returns a normalized copy of list
func NormalizeAll(list []Achievement) []Achievement {
	out := make([]Achievement, len(list))
	for i, a := range list {
		out[i] = Normalize(a)
	}
	return out
}

// Clone returns a copy of list that shares no backing array with it
func Clone(list []Achievement) []Achievement {
	if list == nil {
		return nil
	}
	out := make([]Achievement, len(list))
	copy(out, list)
	return out
}
