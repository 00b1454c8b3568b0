// Package codec implements the compact export code: a versioned, base64
// wrapped JSON array of positional tuples. Plain JSON arrays are still
// accepted on decode for codes produced before the compact format existed.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/robottwo/trophy/internal/trophy"
)

// Prefix tags the compact wire format version
const Prefix = "STH1:"

// Fields is the fixed tuple order of the compact format
var Fields = []string{
	"id", "game", "name", "description", "icon", "achieved",
	"progress", "priority", "favorite", "globalPercentage", "rarity", "gameIcon",
}

const (
	idxID = iota
	idxGame
	idxName
	idxDescription
	idxIcon
	idxAchieved
	idxProgress
	idxPriority
	idxFavorite
	idxGlobalPercentage
	idxRarity
	idxGameIcon
)

// Encode produces the compact code for list
func Encode(list []trophy.Achievement) (string, error) {
	tuples := make([][]any, 0, len(list))
	for _, a := range list {
		tuples = append(tuples, []any{
			a.ID,
			a.Game,
			a.Name,
			a.Description,
			a.Icon,
			boolToInt(a.Achieved),
			a.Progress,
			string(a.Priority),
			boolToInt(a.Favorite),
			a.GlobalPercentage,
			string(a.Rarity),
			a.GameIcon,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// descriptions may contain <, > and & which should stay literal
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tuples); err != nil {
		return "", fmt.Errorf("failed to encode achievements: %w", err)
	}
	payload := bytes.TrimRight(buf.Bytes(), "\n")

	return Prefix + base64.StdEncoding.EncodeToString(payload), nil
}

// Decode reverses Encode. Input without the version prefix is read as a
// legacy JSON array of achievement objects. Decode never returns a partial
// list: on error the result is nil.
func Decode(code string) ([]trophy.Achievement, error) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, Prefix) {
		return decodeLegacy(code)
	}

	payload, err := base64.StdEncoding.DecodeString(strings.TrimSpace(code[len(Prefix):]))
	if err != nil {
		return nil, trophy.Corrupt("Invalid code format", err)
	}

	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, trophy.Corrupt("Invalid code format", err)
	}

	tuples, ok := raw.([]any)
	if !ok {
		return []trophy.Achievement{}, nil
	}

	list := make([]trophy.Achievement, 0, len(tuples))
	for i, item := range tuples {
		tuple, ok := item.([]any)
		if !ok {
			return nil, trophy.Corrupt("Invalid code format", fmt.Errorf("entry %d is not a tuple", i))
		}
		a, err := fromTuple(tuple)
		if err != nil {
			return nil, trophy.Corrupt("Invalid code format", fmt.Errorf("entry %d: %w", i, err))
		}
		list = append(list, a)
	}
	return list, nil
}

// IsCompact reports whether code carries the compact version prefix
func IsCompact(code string) bool {
	return strings.HasPrefix(strings.TrimSpace(code), Prefix)
}

func decodeLegacy(code string) ([]trophy.Achievement, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(code), &raw); err != nil {
		return nil, trophy.Corrupt("Invalid or corrupted data code", err)
	}

	var records []trophy.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, trophy.Malformed("Data must be an array", err)
	}
	return trophy.Achievements(records), nil
}

func fromTuple(tuple []any) (trophy.Achievement, error) {
	at := func(i int) any {
		if i < len(tuple) {
			return tuple[i]
		}
		return nil
	}

	var a trophy.Achievement
	var err error
	if a.ID, err = asString(at(idxID)); err != nil {
		return a, fmt.Errorf("id: %w", err)
	}
	if a.Game, err = asString(at(idxGame)); err != nil {
		return a, fmt.Errorf("game: %w", err)
	}
	if a.Name, err = asString(at(idxName)); err != nil {
		return a, fmt.Errorf("name: %w", err)
	}
	if a.Description, err = asString(at(idxDescription)); err != nil {
		return a, fmt.Errorf("description: %w", err)
	}
	if a.Icon, err = asString(at(idxIcon)); err != nil {
		return a, fmt.Errorf("icon: %w", err)
	}
	a.Achieved = isOne(at(idxAchieved))

	progress, err := asNumber(at(idxProgress))
	if err != nil {
		return a, fmt.Errorf("progress: %w", err)
	}
	a.Progress = trophy.ClampProgress(progress)

	priority, err := asString(at(idxPriority))
	if err != nil {
		return a, fmt.Errorf("priority: %w", err)
	}
	a.Priority = trophy.Priority(priority)
	a.Favorite = isOne(at(idxFavorite))

	if a.GlobalPercentage, err = asNumber(at(idxGlobalPercentage)); err != nil {
		return a, fmt.Errorf("globalPercentage: %w", err)
	}

	rarity, err := asString(at(idxRarity))
	if err != nil {
		return a, fmt.Errorf("rarity: %w", err)
	}
	a.Rarity = trophy.Rarity(rarity)

	if a.GameIcon, err = asString(at(idxGameIcon)); err != nil {
		return a, fmt.Errorf("gameIcon: %w", err)
	}
	return a, nil
}

func asString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return fmt.Sprintf("%v", t), nil
	default:
		return "", fmt.Errorf("unexpected %T", v)
	}
}

func asNumber(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case string:
		if t == "" {
			return 0, nil
		}
		return 0, fmt.Errorf("unexpected string %q", t)
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
}

func isOne(v any) bool {
	n, ok := v.(float64)
	return ok && n == 1
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
