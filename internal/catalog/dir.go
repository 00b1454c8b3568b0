package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robottwo/trophy/internal/trophy"
	"gopkg.in/yaml.v3"
)

// DirFetcher reads saved stats pages from a directory, one <app-id>.yaml
// file per game:
//
//	achievements:
//	  - name: Still Alive
//	    description: Complete the single-player campaign
//	    percent: "45.2%"
type DirFetcher struct {
	Dir string
}

type page struct {
	Achievements []Row `yaml:"achievements"`
}

func (d DirFetcher) Fetch(ctx context.Context, appID, gameName string) ([]trophy.Achievement, error) {
	if err := ctx.Err(); err != nil {
		return nil, &trophy.ExternalFetchError{Reason: err.Error(), Err: err}
	}
	if d.Dir == "" || appID == "" || filepath.Base(appID) != appID {
		return nil, &trophy.ExternalFetchError{Reason: ReasonNoAchievements}
	}

	path := filepath.Join(d.Dir, appID+".yaml")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &trophy.ExternalFetchError{Reason: ReasonNoAchievements, Err: err}
	}
	if err != nil {
		return nil, &trophy.ExternalFetchError{Reason: fmt.Sprintf("Could not read %s", path), Err: err}
	}

	var p page
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, &trophy.ExternalFetchError{Reason: fmt.Sprintf("Could not parse %s", path), Err: err}
	}
	return FromRows(appID, gameName, p.Achievements)
}
