// Package tracker holds the application state: the achievement list, the
// selected game scope and the guide settings. Every mutation either runs to
// completion and is persisted once, or fails and leaves the state untouched.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/robottwo/trophy/internal/catalog"
	"github.com/robottwo/trophy/internal/codec"
	"github.com/robottwo/trophy/internal/guide"
	"github.com/robottwo/trophy/internal/merge"
	"github.com/robottwo/trophy/internal/query"
	"github.com/robottwo/trophy/internal/store"
	"github.com/robottwo/trophy/internal/textsync"
	"github.com/robottwo/trophy/internal/trophy"
	"go.uber.org/zap"
)

var appIDPattern = regexp.MustCompile(`^\d+$`)

// Defaults seed settings that were never saved
type Defaults struct {
	AIProvider    string
	GuideLanguage string
}

type Tracker struct {
	store  *store.Store
	logger *zap.Logger

	list          []trophy.Achievement
	scope         string
	aiProvider    guide.Provider
	guideLanguage string

	// revision counts committed changes; pending confirmations compare against it
	revision uint64
}

// Open loads the persisted state. A saved scope whose game no longer exists
// falls back to all games.
func Open(st *store.Store, logger *zap.Logger, defaults Defaults) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Tracker{
		store:  st,
		logger: logger,
		list:   st.Load(),
		scope:  st.LoadScope(),
	}
	t.reconcileScope()

	provider, err := guide.ParseProvider(st.LoadSetting(store.AIProviderKey, defaults.AIProvider))
	if err != nil {
		logger.Warn("ignoring unknown AI provider setting", zap.Error(err))
	}
	t.aiProvider = provider

	t.guideLanguage = st.LoadSetting(store.GuideLanguageKey, defaults.GuideLanguage)
	if strings.TrimSpace(t.guideLanguage) == "" {
		t.guideLanguage = guide.DefaultLanguage
	}

	logger.Debug("tracker opened",
		zap.Int("achievements", len(t.list)),
		zap.String("scope", t.scope),
	)
	return t
}

// Achievements returns a copy of the whole list
func (t *Tracker) Achievements() []trophy.Achievement {
	return trophy.Clone(t.list)
}

func (t *Tracker) IsEmpty() bool {
	return len(t.list) == 0
}

func (t *Tracker) Scope() string {
	return t.scope
}

func (t *Tracker) Revision() uint64 {
	return t.revision
}

func (t *Tracker) AIProvider() guide.Provider {
	return t.aiProvider
}

func (t *Tracker) GuideLanguage() string {
	return t.guideLanguage
}

// View is the filtered list for the current scope
func (t *Tracker) View(search string, status query.Status) []trophy.Achievement {
	return query.Filter(t.list, query.Criteria{
		Scope:  t.scope,
		Search: search,
		Status: status,
	})
}

func (t *Tracker) Games() []query.GameStat {
	return query.GameStats(t.list)
}

// SetScope selects a game, or all games for "" and trophy.AllGames
func (t *Tracker) SetScope(scope string) error {
	if scope == "" {
		scope = trophy.AllGames
	}
	if scope != trophy.AllGames && !query.HasGame(t.list, scope) {
		return trophy.Invalid("game", "Unknown game %q", scope)
	}
	if err := t.store.SaveScope(scope); err != nil {
		return fmt.Errorf("failed to save scope: %w", err)
	}

	t.scope = scope
	t.revision++
	return nil
}

// Find looks an achievement up by id, then by case-insensitive name
func (t *Tracker) Find(idOrName string) (trophy.Achievement, error) {
	if i := t.indexOf(idOrName); i >= 0 {
		return t.list[i], nil
	}

	if suggestions := query.Suggest(t.list, idOrName, 1); len(suggestions) > 0 {
		return trophy.Achievement{}, trophy.Invalid("achievement",
			"No achievement matches %q. Did you mean %q [%s]?", idOrName, suggestions[0].Name, suggestions[0].ID)
	}
	return trophy.Achievement{}, trophy.Invalid("achievement", "No achievement matches %q", idOrName)
}

func (t *Tracker) indexOf(idOrName string) int {
	for i := range t.list {
		if t.list[i].ID == idOrName {
			return i
		}
	}
	for i := range t.list {
		if strings.EqualFold(t.list[i].Name, idOrName) {
			return i
		}
	}
	return -1
}

// Toggle flips the completion of one achievement
func (t *Tracker) Toggle(idOrName string) (string, error) {
	a, err := t.Find(idOrName)
	if err != nil {
		return "", err
	}

	list := trophy.Clone(t.list)
	i := t.indexOf(a.ID)
	list[i].SetCompleted(!list[i].Achieved)

	if err := t.commit(list); err != nil {
		return "", err
	}

	status := "incomplete"
	if list[i].Achieved {
		status = "completed"
	}
	t.logger.Info("toggled achievement", zap.String("id", a.ID), zap.String("status", status))
	return fmt.Sprintf("%s marked as %s", a.Name, status), nil
}

// SyncText updates progress from pasted text. A JSON array (bare or under
// "achievements") is merged record by record; anything else goes through the
// heuristic matcher over the achievements in scope. Overwrite resets the
// current view first.
func (t *Tracker) SyncText(text string, overwrite bool) (string, error) {
	plan, err := t.planSync(text, overwrite)
	if err != nil {
		return "", err
	}
	return t.runSync(plan)
}

type syncPlan struct {
	text      string
	overwrite bool
	records   []trophy.Record
	json      bool
}

func (t *Tracker) planSync(text string, overwrite bool) (syncPlan, error) {
	plan := syncPlan{text: text, overwrite: overwrite}

	if strings.TrimSpace(text) == "" {
		return plan, trophy.Malformed("Please paste some text first.", nil)
	}

	if merge.IsPayload(text) {
		records, err := merge.ParsePayload(text)
		if err != nil {
			return plan, err
		}
		if err := merge.Validate(records); err != nil {
			return plan, err
		}
		plan.records = records
		plan.json = true
		return plan, nil
	}

	if len(query.IndexesInScope(t.list, t.scope)) == 0 {
		if t.scope == trophy.AllGames {
			return plan, trophy.Invalid("", "No achievements found.")
		}
		return plan, trophy.Invalid("", "No achievements found for the current game.")
	}
	return plan, nil
}

func (t *Tracker) runSync(plan syncPlan) (string, error) {
	if plan.json {
		list, summary := merge.Apply(t.list, plan.records, t.scope, plan.overwrite)
		if err := t.commit(list); err != nil {
			return "", err
		}
		t.reconcileScope()

		t.logger.Info("merged JSON payload",
			zap.String("scope", t.scope),
			zap.Bool("overwrite", plan.overwrite),
			zap.Int("matched", summary.Matched),
			zap.Int("added", summary.Added),
			zap.Int("removed", summary.Removed),
		)
		return summary.Message(), nil
	}

	mode := textsync.Merge
	if plan.overwrite {
		mode = textsync.Overwrite
	}

	list := trophy.Clone(t.list)
	indexes := query.IndexesInScope(list, t.scope)
	targets := make([]*trophy.Achievement, 0, len(indexes))
	for _, i := range indexes {
		targets = append(targets, &list[i])
	}

	result := textsync.Apply(targets, plan.text, mode)
	if !result.Changed() {
		t.logger.Debug("text sync found no updates", zap.Int("targets", result.Targets))
		return "", &trophy.NoMatchError{Message: textsync.NoUpdatesMessage}
	}

	if err := t.commit(list); err != nil {
		return "", err
	}

	t.logger.Info("synced achievements from text",
		zap.String("scope", t.scope),
		zap.String("mode", mode.String()),
		zap.Int("completed", result.Synced),
		zap.Int("progress_updated", result.ProgressUpdated),
	)
	return result.Message(t.scope), nil
}

// Import replaces the whole store with the content of an export code
func (t *Tracker) Import(code string) (string, error) {
	list, err := decodeImport(code)
	if err != nil {
		return "", err
	}
	return t.runImport(list)
}

func decodeImport(code string) ([]trophy.Achievement, error) {
	if strings.TrimSpace(code) == "" {
		return nil, trophy.Malformed("Please paste data code first", nil)
	}

	list, err := codec.Decode(code)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 && list[0].Name == "" {
		return nil, trophy.Malformed("Invalid data: Achievements must have a name property.", nil)
	}
	return trophy.NormalizeAll(list), nil
}

func (t *Tracker) runImport(list []trophy.Achievement) (string, error) {
	if err := t.commit(list); err != nil {
		return "", err
	}
	t.reconcileScope()

	t.logger.Info("imported achievements", zap.Int("count", len(t.list)))
	return fmt.Sprintf("Imported %d achievements!", len(t.list)), nil
}

// Export encodes the whole list as a compact code
func (t *Tracker) Export() (string, error) {
	return codec.Encode(t.list)
}

// AddGame fetches the achievements of a new game and appends them. The game
// must not be tracked yet, neither by name nor by app id.
func (t *Tracker) AddGame(ctx context.Context, appID, name string, fetcher catalog.Fetcher) (string, error) {
	appID = strings.TrimSpace(appID)
	name = strings.TrimSpace(name)

	switch {
	case appID == "":
		return "", trophy.Invalid("app_id", "Please enter a Steam App ID")
	case !appIDPattern.MatchString(appID):
		return "", trophy.Invalid("app_id", "App ID must be a number")
	case name == "":
		return "", trophy.Invalid("name", "Please enter the game name")
	case query.HasGame(t.list, name):
		return "", trophy.Invalid("name", "Game %q is already added!", name)
	}
	for _, a := range t.list {
		if strings.HasPrefix(a.ID, appID+"_") {
			return "", trophy.Invalid("app_id", "App ID %s is already tracked as %q", appID, a.Game)
		}
	}

	t.logger.Info("fetching achievements", zap.String("app_id", appID), zap.String("game", name))
	fetched, err := fetcher.Fetch(ctx, appID, name)
	if err != nil {
		var fetchErr *trophy.ExternalFetchError
		if !errors.As(err, &fetchErr) {
			err = &trophy.ExternalFetchError{Reason: err.Error(), Err: err}
		}
		t.logger.Warn("failed to fetch achievements", zap.String("app_id", appID), zap.Error(err))
		return "", err
	}
	if len(fetched) == 0 {
		return "", &trophy.ExternalFetchError{Reason: catalog.ReasonNoAchievements}
	}

	list := append(trophy.Clone(t.list), trophy.NormalizeAll(fetched)...)
	if err := t.commit(list); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added %s with %d achievements!", name, len(fetched)), nil
}

// DeleteGame removes every achievement of game and selects all games
func (t *Tracker) DeleteGame(game string) (string, error) {
	game, err := t.deletableGame(game)
	if err != nil {
		return "", err
	}
	return t.runDeleteGame(game)
}

func (t *Tracker) deletableGame(game string) (string, error) {
	if game == "" {
		game = t.scope
	}
	if game == trophy.AllGames {
		return "", trophy.Invalid("game", "Select a game to delete first")
	}
	if !query.HasGame(t.list, game) {
		return "", trophy.Invalid("game", "Unknown game %q", game)
	}
	return game, nil
}

func (t *Tracker) runDeleteGame(game string) (string, error) {
	list := make([]trophy.Achievement, 0, len(t.list))
	for _, a := range t.list {
		if a.Game != game {
			list = append(list, a)
		}
	}
	deleted := len(t.list) - len(list)

	if err := t.commit(list); err != nil {
		return "", err
	}
	if err := t.resetScope(); err != nil {
		return "", err
	}

	t.logger.Info("deleted game", zap.String("game", game), zap.Int("achievements", deleted))
	return fmt.Sprintf("Deleted %q and %d achievements.", game, deleted), nil
}

// Clear removes every achievement and selects all games
func (t *Tracker) Clear() (string, error) {
	if err := t.store.ClearAchievements(); err != nil {
		return "", fmt.Errorf("failed to clear achievements: %w", err)
	}
	t.list = []trophy.Achievement{}
	t.revision++
	if err := t.resetScope(); err != nil {
		return "", err
	}

	t.logger.Info("cleared all achievements")
	return "All data cleared", nil
}

// SeedDemo replaces the list with the sample dataset
func (t *Tracker) SeedDemo() (string, error) {
	if err := t.commit(trophy.DemoAchievements()); err != nil {
		return "", err
	}
	if err := t.resetScope(); err != nil {
		return "", err
	}
	return "Sample data loaded for testing.", nil
}

func (t *Tracker) SetAIProvider(name string) error {
	provider, err := guide.ParseProvider(name)
	if err != nil {
		return err
	}
	if err := t.store.SaveSetting(store.AIProviderKey, string(provider)); err != nil {
		return fmt.Errorf("failed to save AI provider: %w", err)
	}
	t.aiProvider = provider
	return nil
}

func (t *Tracker) SetGuideLanguage(language string) error {
	language = strings.TrimSpace(language)
	if language == "" {
		return trophy.Invalid("language", "Please choose a guide language")
	}
	if err := t.store.SaveSetting(store.GuideLanguageKey, language); err != nil {
		return fmt.Errorf("failed to save guide language: %w", err)
	}
	t.guideLanguage = language
	return nil
}

// commit persists list and adopts what was written
func (t *Tracker) commit(list []trophy.Achievement) error {
	saved, err := t.store.Save(list)
	if err != nil {
		t.logger.Error("failed to save achievements", zap.Error(err))
		return err
	}
	t.list = saved
	t.revision++
	return nil
}

func (t *Tracker) resetScope() error {
	t.scope = trophy.AllGames
	if err := t.store.SaveScope(t.scope); err != nil {
		return fmt.Errorf("failed to save scope: %w", err)
	}
	return nil
}

func (t *Tracker) reconcileScope() {
	if t.scope == "" || (t.scope != trophy.AllGames && !query.HasGame(t.list, t.scope)) {
		if err := t.resetScope(); err != nil {
			t.logger.Warn("failed to reset scope", zap.Error(err))
		}
	}
}
