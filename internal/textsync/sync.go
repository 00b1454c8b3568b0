package textsync

import (
	"fmt"
	"strings"

	"github.com/robottwo/trophy/internal/trophy"
)

// Mode selects how a sync treats existing progress
type Mode int

const (
	// Merge only ever raises progress or completes achievements
	Merge Mode = iota
	// Overwrite resets every target before re-applying what the text says
	Overwrite
)

func (m Mode) String() string {
	if m == Overwrite {
		return "overwrite"
	}
	return "merge"
}

// NoUpdatesMessage is shown when a sync found nothing to change
const NoUpdatesMessage = `No updates detected. Make sure you copied the "Unlocked" status or progress counters.`

// Change describes one achievement updated by a sync
type Change struct {
	ID        string
	Name      string
	Completed bool
	Progress  int
}

// Result aggregates a sync run
type Result struct {
	Mode            Mode
	Targets         int
	Synced          int
	ProgressUpdated int
	Changes         []Change
}

// Changed reports whether the run mutated anything and must be persisted.
// An overwrite always counts, since the reset itself is a change.
func (r Result) Changed() bool {
	return r.Synced > 0 || r.ProgressUpdated > 0 || r.Mode == Overwrite
}

// Message is the summary shown after a run; scope names the game synced or
// trophy.AllGames.
func (r Result) Message(scope string) string {
	switch {
	case r.Mode == Overwrite:
		label := scope
		if scope == "" || scope == trophy.AllGames {
			label = "all games"
		}
		return fmt.Sprintf("Fresh sync complete for %s!", label)
	case r.Synced > 0 && r.ProgressUpdated > 0:
		return fmt.Sprintf("Synced %d completed and updated progress for %d achievements!", r.Synced, r.ProgressUpdated)
	case r.Synced > 0:
		return fmt.Sprintf("Synced %d new achievements!", r.Synced)
	case r.ProgressUpdated > 0:
		return fmt.Sprintf("Updated progress for %d achievements!", r.ProgressUpdated)
	default:
		return NoUpdatesMessage
	}
}

// Apply updates targets in place from text. In Overwrite mode every target
// is first reset to not achieved with zero progress.
//
// For each target whose name appears in the text: an unlock marks it
// achieved with full progress; otherwise a counter raises its progress when
// the new value is strictly greater. Achievements not found in the text are
// left alone.
func Apply(targets []*trophy.Achievement, text string, mode Mode) Result {
	result := Result{Mode: mode, Targets: len(targets)}

	if mode == Overwrite {
		for _, a := range targets {
			a.Achieved = false
			a.Progress = 0
		}
	}

	lowerText := strings.ToLower(text)
	for _, a := range targets {
		m := matchLower(lowerText, strings.ToLower(a.Name))
		if !m.Found {
			continue
		}

		if m.Completed {
			if !a.Achieved {
				a.SetCompleted(true)
				result.Synced++
				result.Changes = append(result.Changes, Change{ID: a.ID, Name: a.Name, Completed: true, Progress: 100})
			}
			continue
		}

		if a.Achieved || !m.HasProgress {
			continue
		}
		if m.Progress > a.Progress {
			a.Progress = m.Progress
			result.ProgressUpdated++
			result.Changes = append(result.Changes, Change{ID: a.ID, Name: a.Name, Progress: m.Progress})
		}
	}

	return result
}
