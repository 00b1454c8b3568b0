package trophy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString is a string that also decodes from a JSON number.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*s = FlexString(n.String())
	return nil
}

// FlexFloat is a number that also decodes from a numeric JSON string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("expected a number, got %q", v)
		}
		*f = FlexFloat(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a number, got %s", string(data))
	}
	*f = FlexFloat(n)
	return nil
}

// FlexBool is a flag that also decodes from 1/0 and from "true"/"false".
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("expected a flag, got nothing")
	}
	switch data[0] {
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*b = FlexBool(v)
		return nil
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("expected a flag, got %q", v)
		}
		*b = FlexBool(parsed)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a flag, got %s", string(data))
	}
	*b = n != 0
	return nil
}

// Record is an achievement-like object read from outside the store. Every
// field is optional so that absent fields can be told apart from zero values.
type Record struct {
	ID               *FlexString `json:"id,omitempty"`
	Game             *string     `json:"game,omitempty"`
	Name             *string     `json:"name,omitempty"`
	Description      *string     `json:"description,omitempty"`
	Icon             *string     `json:"icon,omitempty"`
	Achieved         *FlexBool   `json:"achieved,omitempty"`
	Progress         *FlexFloat  `json:"progress,omitempty"`
	Priority         *Priority   `json:"priority,omitempty"`
	Favorite         *FlexBool   `json:"favorite,omitempty"`
	GlobalPercentage *FlexFloat  `json:"globalPercentage,omitempty"`
	Rarity           *Rarity     `json:"rarity,omitempty"`
	GameIcon         *string     `json:"gameIcon,omitempty"`
}

// Identifier returns the record id, or "" when it is missing
func (r Record) Identifier() string {
	if r.ID == nil {
		return ""
	}
	return string(*r.ID)
}

// DisplayName returns the record name, or "" when it is missing
func (r Record) DisplayName() string {
	if r.Name == nil {
		return ""
	}
	return *r.Name
}

// SetID replaces the record id
func (r *Record) SetID(id string) {
	v := FlexString(id)
	r.ID = &v
}

// SetGame replaces the record game
func (r *Record) SetGame(game string) {
	r.Game = &game
}

// Overlay copies every present field of r onto a. Absent fields keep the
// value already stored in a.
func (r Record) Overlay(a *Achievement) {
	if r.ID != nil {
		a.ID = string(*r.ID)
	}
	if r.Game != nil {
		a.Game = *r.Game
	}
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Description != nil {
		a.Description = *r.Description
	}
	if r.Icon != nil {
		a.Icon = *r.Icon
	}
	if r.Achieved != nil {
		a.Achieved = bool(*r.Achieved)
	}
	if r.Progress != nil {
		a.Progress = ClampProgress(float64(*r.Progress))
	}
	if r.Priority != nil {
		a.Priority = *r.Priority
	}
	if r.Favorite != nil {
		a.Favorite = bool(*r.Favorite)
	}
	if r.GlobalPercentage != nil {
		a.GlobalPercentage = float64(*r.GlobalPercentage)
	}
	if r.Rarity != nil {
		a.Rarity = *r.Rarity
	}
	if r.GameIcon != nil {
		a.GameIcon = *r.GameIcon
	}
}

// Achievement builds a canonical achievement from the record with ingestion
// defaults applied.
func (r Record) Achievement() Achievement {
	var a Achievement
	r.Overlay(&a)
	return Normalize(a)
}

// RecordFrom is the inverse of Record.Achievement: every field is present.
func RecordFrom(a Achievement) Record {
	id := FlexString(a.ID)
	progress := FlexFloat(a.Progress)
	achieved := FlexBool(a.Achieved)
	favorite := FlexBool(a.Favorite)
	percentage := FlexFloat(a.GlobalPercentage)
	return Record{
		ID:               &id,
		Game:             &a.Game,
		Name:             &a.Name,
		Description:      &a.Description,
		Icon:             &a.Icon,
		Achieved:         &achieved,
		Progress:         &progress,
		Priority:         &a.Priority,
		Favorite:         &favorite,
		GlobalPercentage: &percentage,
		Rarity:           &a.Rarity,
		GameIcon:         &a.GameIcon,
	}
}

// Achievements converts records, applying ingestion defaults to each
func Achievements(records []Record) []Achievement {
	out := make([]Achievement, 0, len(records))
	for _, r := range records {
		out = append(out, r.Achievement())
	}
	return out
}
