package tracker

import (
	"fmt"

	"github.com/robottwo/trophy/internal/trophy"
)

type action int

const (
	actionOverwriteSync action = iota
	actionImport
	actionDeleteGame
	actionClear
	actionSeedDemo
)

// Pending is a destructive operation waiting for the user to confirm it.
// Input is validated when it is proposed; Confirm only executes.
type Pending struct {
	// Prompt is the question to ask before confirming
	Prompt string

	action   action
	revision uint64
	sync     syncPlan
	imported []trophy.Achievement
	game     string
}

// ProposeOverwriteSync validates an overwriting sync of the current view
func (t *Tracker) ProposeOverwriteSync(text string) (*Pending, error) {
	plan, err := t.planSync(text, true)
	if err != nil {
		return nil, err
	}

	scope := "ALL games"
	if t.scope != trophy.AllGames {
		scope = fmt.Sprintf("%q", t.scope)
	}
	return t.propose(actionOverwriteSync, fmt.Sprintf(
		`This will OVERWRITE your current progress for %s. All achievements not found as "Unlocked" in your paste will be reset. Are you sure?`, scope,
	), func(p *Pending) { p.sync = plan }), nil
}

// ProposeImport decodes code and asks before replacing the whole store
func (t *Tracker) ProposeImport(code string) (*Pending, error) {
	list, err := decodeImport(code)
	if err != nil {
		return nil, err
	}
	return t.propose(actionImport, "This will OVERWRITE your current progress. Are you sure?",
		func(p *Pending) { p.imported = list }), nil
}

// ProposeDeleteGame asks before deleting game, or the selected game when empty
func (t *Tracker) ProposeDeleteGame(game string) (*Pending, error) {
	game, err := t.deletableGame(game)
	if err != nil {
		return nil, err
	}
	return t.propose(actionDeleteGame, fmt.Sprintf(
		"Are you sure you want to delete %q and all its achievements? This cannot be undone.", game,
	), func(p *Pending) { p.game = game }), nil
}

func (t *Tracker) ProposeClear() *Pending {
	return t.propose(actionClear, "Are you sure you want to clear all data? This will remove all achievements.", nil)
}

func (t *Tracker) ProposeSeedDemo() *Pending {
	return t.propose(actionSeedDemo, "This will replace your current achievements with sample data. Are you sure?", nil)
}

func (t *Tracker) propose(a action, prompt string, fill func(*Pending)) *Pending {
	p := &Pending{Prompt: prompt, action: a, revision: t.revision}
	if fill != nil {
		fill(p)
	}
	return p
}

// Confirm executes a pending operation. It fails if the tracker changed
// since the operation was proposed.
func (t *Tracker) Confirm(p *Pending) (string, error) {
	if p == nil {
		return "", trophy.Invalid("confirm", "Nothing to confirm")
	}
	if p.revision != t.revision {
		return "", trophy.Invalid("confirm", "Your data changed since this was requested. Please try again.")
	}

	switch p.action {
	case actionOverwriteSync:
		return t.runSync(p.sync)
	case actionImport:
		return t.runImport(p.imported)
	case actionDeleteGame:
		return t.runDeleteGame(p.game)
	case actionClear:
		return t.Clear()
	case actionSeedDemo:
		return t.SeedDemo()
	default:
		return "", trophy.Invalid("confirm", "Unknown operation")
	}
}
