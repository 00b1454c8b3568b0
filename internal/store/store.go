package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/robottwo/trophy/internal/trophy"
	"go.uber.org/zap"
)

const (
	AchievementsKey  = "achievements"
	CurrentGameKey   = "currentGame"
	AIProviderKey    = "aiProvider"
	GuideLanguageKey = "guideLanguage"
)

// Store is the only component allowed to persist the achievement list
type Store struct {
	backend Backend
	logger  *zap.Logger
}

func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		logger:  logger,
	}
}

// Load reads the persisted achievement list. It fails soft: a missing key,
// an unreadable payload or a payload that is not an array all yield an
// empty list.
func (s *Store) Load() []trophy.Achievement {
	saved, ok, err := s.backend.Get(AchievementsKey)
	if err != nil {
		s.logger.Warn("failed to read achievements, starting empty", zap.Error(err))
		return []trophy.Achievement{}
	}
	if !ok || strings.TrimSpace(saved) == "" {
		return []trophy.Achievement{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(saved), &raw); err != nil {
		s.logger.Warn("stored achievements are not an array, resetting", zap.Error(err))
		return []trophy.Achievement{}
	}

	list := make([]trophy.Achievement, 0, len(raw))
	for i, item := range raw {
		var record trophy.Record
		if err := json.Unmarshal(item, &record); err != nil {
			s.logger.Debug("skipping unreadable stored record", zap.Int("index", i), zap.Error(err))
			continue
		}
		list = append(list, record.Achievement())
	}

	list = Dedupe(list)
	s.logger.Debug("loaded achievements", zap.Int("count", len(list)))
	return list
}

// Save deduplicates list by id and persists it. The returned slice is
// exactly what was written.
func (s *Store) Save(list []trophy.Achievement) ([]trophy.Achievement, error) {
	list = Dedupe(list)

	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to encode achievements: %w", err)
	}
	if err := s.backend.Set(AchievementsKey, string(data)); err != nil {
		return nil, fmt.Errorf("failed to persist achievements: %w", err)
	}

	s.logger.Debug("saved achievements", zap.Int("count", len(list)))
	return list, nil
}

// ClearAchievements removes the persisted list entirely
func (s *Store) ClearAchievements() error {
	return s.backend.Delete(AchievementsKey)
}

// LoadScope returns the persisted game scope, or trophy.AllGames
func (s *Store) LoadScope() string {
	return s.loadString(CurrentGameKey, trophy.AllGames)
}

func (s *Store) SaveScope(scope string) error {
	if scope == "" {
		scope = trophy.AllGames
	}
	return s.backend.Set(CurrentGameKey, scope)
}

// LoadSetting returns a persisted preference or fallback when unset
func (s *Store) LoadSetting(key, fallback string) string {
	return s.loadString(key, fallback)
}

func (s *Store) SaveSetting(key, value string) error {
	return s.backend.Set(key, value)
}

func (s *Store) loadString(key, fallback string) string {
	value, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Warn("failed to read key", zap.String("key", key), zap.Error(err))
		return fallback
	}
	if !ok || value == "" {
		return fallback
	}
	return value
}

// Dedupe drops records with an empty id and every later record that repeats
// an id already seen. Order is preserved.
func Dedupe(list []trophy.Achievement) []trophy.Achievement {
	seen := make(map[string]struct{}, len(list))
	out := make([]trophy.Achievement, 0, len(list))
	for _, a := range list {
		if a.ID == "" {
			continue
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}
