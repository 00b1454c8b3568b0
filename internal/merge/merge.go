// Package merge folds externally supplied achievement records into the
// stored list, either replacing the current view or overlaying matching
// records field by field.
package merge

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/robottwo/trophy/internal/trophy"
)

const (
	notArrayMessage = "Invalid format: Data must be an array of achievements."
	noNameMessage   = "Invalid data: Achievements must have a name property."
	badFieldMessage = "Invalid data: Achievement fields have the wrong type."
)

type envelope struct {
	Achievements []trophy.Record `json:"achievements"`
}

// IsPayload reports whether text is well-formed JSON shaped like a sync
// payload: a top-level array, or an object with an "achievements" array.
// Such text is never handed to the text matcher.
func IsPayload(text string) bool {
	data := bytes.TrimSpace([]byte(text))
	if len(data) == 0 || !json.Valid(data) {
		return false
	}
	switch data[0] {
	case '[':
		return true
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return false
		}
		raw, ok := fields["achievements"]
		return ok && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
	}
	return false
}

// ParsePayload reads a JSON payload that is either a bare array of records
// or an object carrying them under "achievements".
func ParsePayload(text string) ([]trophy.Record, error) {
	data := bytes.TrimSpace([]byte(text))
	if len(data) == 0 {
		return nil, trophy.Malformed(notArrayMessage, nil)
	}

	switch data[0] {
	case '[':
		var records []trophy.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, decodeError(err)
		}
		return records, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, trophy.Malformed(notArrayMessage, err)
		}
		raw, ok := fields["achievements"]
		if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
			return nil, trophy.Malformed(notArrayMessage, nil)
		}
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, decodeError(err)
		}
		return env.Achievements, nil
	default:
		return nil, trophy.Malformed(notArrayMessage, nil)
	}
}

func decodeError(err error) error {
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		return trophy.Malformed(notArrayMessage, err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "" {
		return trophy.Malformed(notArrayMessage, err)
	}
	return trophy.Malformed(badFieldMessage, err)
}

// Validate rejects a payload whose first record has no name. It runs before
// anything is mutated.
func Validate(records []trophy.Record) error {
	if len(records) > 0 && records[0].DisplayName() == "" {
		return trophy.Malformed(noNameMessage, nil)
	}
	return nil
}

// Summary describes what a merge did
type Summary struct {
	Overwrite bool
	Matched   int
	Added     int
	Removed   int
}

func (s Summary) Message() string {
	if s.Overwrite {
		return "Data overwritten for current view!"
	}
	return "Progress updated from JSON!"
}

// Apply merges records into list under scope and returns the new list. list
// itself is not modified.
//
// With scope trophy.AllGames, overwrite replaces everything and merge
// overlays records by id, appending the rest. With a game scope, overwrite
// swaps out that game's achievements and merge also matches by name within
// the game; records added under a game scope always belong to it.
//
// Records without an id are given a generated one.
func Apply(list []trophy.Achievement, records []trophy.Record, scope string, overwrite bool) ([]trophy.Achievement, Summary) {
	summary := Summary{Overwrite: overwrite}
	allGames := scope == "" || scope == trophy.AllGames

	if overwrite {
		var out []trophy.Achievement
		if allGames {
			out = make([]trophy.Achievement, 0, len(records))
			summary.Removed = len(list)
		} else {
			out = make([]trophy.Achievement, 0, len(list)+len(records))
			for _, a := range list {
				if a.Game == scope {
					summary.Removed++
					continue
				}
				out = append(out, a)
			}
		}
		for _, r := range records {
			if !allGames {
				r.SetGame(scope)
			}
			out = append(out, fresh(r))
			summary.Added++
		}
		return out, summary
	}

	out := trophy.Clone(list)
	for _, r := range records {
		idx := indexOf(out, r, scope, allGames)
		if idx >= 0 {
			r.Overlay(&out[idx])
			out[idx] = trophy.Normalize(out[idx])
			summary.Matched++
			continue
		}
		if !allGames {
			r.SetGame(scope)
		}
		out = append(out, fresh(r))
		summary.Added++
	}
	return out, summary
}

func indexOf(list []trophy.Achievement, r trophy.Record, scope string, allGames bool) int {
	id := r.Identifier()
	if id != "" {
		for i := range list {
			if list[i].ID == id {
				return i
			}
		}
	}
	if allGames || r.Name == nil {
		return -1
	}
	for i := range list {
		if list[i].Name == *r.Name && list[i].Game == scope {
			return i
		}
	}
	return -1
}

func fresh(r trophy.Record) trophy.Achievement {
	if r.Identifier() == "" {
		r.SetID(uuid.NewString())
	}
	return r.Achievement()
}
