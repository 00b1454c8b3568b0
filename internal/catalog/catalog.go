// Package catalog defines where a newly added game's achievement list comes
// from. Fetchers return a non-empty ordered list or an ExternalFetchError
// carrying a reason fit to show the user.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robottwo/trophy/internal/trophy"
)

const (
	ReasonEmptyPage      = "No achievements found on page or Steam profile is private"
	ReasonAllSourcesDown = "All proxies failed to fetch data"
	ReasonNoAchievements = "No achievements found"
)

// Fetcher retrieves the achievement list of one game
type Fetcher interface {
	Fetch(ctx context.Context, appID, gameName string) ([]trophy.Achievement, error)
}

// FetcherFunc adapts a plain function to Fetcher
type FetcherFunc func(ctx context.Context, appID, gameName string) ([]trophy.Achievement, error)

func (f FetcherFunc) Fetch(ctx context.Context, appID, gameName string) ([]trophy.Achievement, error) {
	return f(ctx, appID, gameName)
}

// ID returns the conventional id of the index-th achievement of a game
func ID(appID string, index int) string {
	return appID + "_" + strconv.Itoa(index)
}

// Row is one achievement as scraped from a stats page
type Row struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Percent is the global unlock rate as displayed, e.g. "12.5%"
	Percent string `yaml:"percent"`
}

// FromRows builds fresh achievements for a game from scraped rows. Rarity is
// derived from the global percentage.
func FromRows(appID, gameName string, rows []Row) ([]trophy.Achievement, error) {
	if len(rows) == 0 {
		return nil, &trophy.ExternalFetchError{Reason: ReasonEmptyPage}
	}

	out := make([]trophy.Achievement, 0, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			name = fmt.Sprintf("Achievement %d", i+1)
		}
		pct := parsePercent(row.Percent)
		out = append(out, trophy.Achievement{
			ID:               ID(appID, i),
			Game:             gameName,
			Name:             name,
			Description:      strings.TrimSpace(row.Description),
			Icon:             trophy.DefaultIcon,
			Priority:         trophy.PriorityMedium,
			GlobalPercentage: pct,
			Rarity:           trophy.RarityForPercentage(pct),
			GameIcon:         trophy.DefaultIcon,
		})
	}
	return out, nil
}

func parsePercent(s string) float64 {
	s = strings.TrimSpace(strings.Replace(s, "%", "", 1))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Chain tries each fetcher in order; the first non-empty list wins.
func Chain(fetchers ...Fetcher) Fetcher {
	return FetcherFunc(func(ctx context.Context, appID, gameName string) ([]trophy.Achievement, error) {
		var lastErr error
		for _, f := range fetchers {
			if err := ctx.Err(); err != nil {
				return nil, &trophy.ExternalFetchError{Reason: err.Error(), Err: err}
			}
			list, err := f.Fetch(ctx, appID, gameName)
			if err != nil {
				lastErr = err
				continue
			}
			if len(list) > 0 {
				return list, nil
			}
		}

		var fetchErr *trophy.ExternalFetchError
		switch {
		case errors.As(lastErr, &fetchErr):
			return nil, lastErr
		case lastErr != nil:
			return nil, &trophy.ExternalFetchError{Reason: lastErr.Error(), Err: lastErr}
		default:
			return nil, &trophy.ExternalFetchError{Reason: ReasonAllSourcesDown}
		}
	})
}
