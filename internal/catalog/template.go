package catalog

import (
	"context"

	"github.com/robottwo/trophy/internal/trophy"
)

type template struct {
	name        string
	description string
	priority    trophy.Priority
	favorite    bool
	percentage  float64
	rarity      trophy.Rarity
}

// TemplateFetcher works offline: every game gets the same five generic
// milestones.
type TemplateFetcher struct{}

func (TemplateFetcher) Fetch(ctx context.Context, appID, gameName string) ([]trophy.Achievement, error) {
	if err := ctx.Err(); err != nil {
		return nil, &trophy.ExternalFetchError{Reason: err.Error(), Err: err}
	}

	templates := []template{
		{"First Steps", "Start playing " + gameName, trophy.PriorityMedium, false, 95.0, trophy.RarityCommon},
		{"Getting Started", "Complete the tutorial or first level", trophy.PriorityMedium, false, 75.0, trophy.RarityCommon},
		{"Dedicated Player", "Play for 10 hours", trophy.PriorityLow, false, 45.0, trophy.RarityUncommon},
		{"Master", "Complete all main objectives", trophy.PriorityHigh, true, 15.0, trophy.RarityRare},
		{"Perfectionist", "Achieve 100% completion", trophy.PriorityHigh, true, 5.0, trophy.RarityEpic},
	}

	out := make([]trophy.Achievement, 0, len(templates))
	for i, t := range templates {
		out = append(out, trophy.Achievement{
			ID:               ID(appID, i),
			Game:             gameName,
			Name:             t.name,
			Description:      t.description,
			Icon:             trophy.DefaultIcon,
			Priority:         t.priority,
			Favorite:         t.favorite,
			GlobalPercentage: t.percentage,
			Rarity:           t.rarity,
			GameIcon:         trophy.DefaultIcon,
		})
	}
	return out, nil
}
