package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/robottwo/trophy/internal/catalog"
	"github.com/robottwo/trophy/internal/codec"
	"github.com/robottwo/trophy/internal/guide"
	"github.com/robottwo/trophy/internal/query"
	"github.com/robottwo/trophy/internal/store"
	"github.com/robottwo/trophy/internal/trophy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingBackend struct {
	*store.MemoryBackend
	fail bool
}

func (b *failingBackend) Set(key, value string) error {
	if b.fail {
		return errors.New("disk full")
	}
	return b.MemoryBackend.Set(key, value)
}

func newDemoTracker(t *testing.T) (*Tracker, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryBackend(), zap.NewNop())
	tr := Open(st, zap.NewNop(), Defaults{})
	_, err := tr.SeedDemo()
	require.NoError(t, err)
	return tr, st
}

func find(t *testing.T, tr *Tracker, id string) trophy.Achievement {
	t.Helper()
	a, err := tr.Find(id)
	require.NoError(t, err)
	return a
}

func TestOpenDefaults(t *testing.T) {
	st := store.New(store.NewMemoryBackend(), nil)
	tr := Open(st, nil, Defaults{})

	assert.True(t, tr.IsEmpty())
	assert.Equal(t, trophy.AllGames, tr.Scope())
	assert.Equal(t, guide.ProviderGemini, tr.AIProvider())
	assert.Equal(t, "Chinese", tr.GuideLanguage())

	tr = Open(st, nil, Defaults{AIProvider: "claude", GuideLanguage: "English"})
	assert.Equal(t, guide.ProviderClaude, tr.AIProvider())
	assert.Equal(t, "English", tr.GuideLanguage())
}

func TestOpenReconcilesScope(t *testing.T) {
	backend := store.NewMemoryBackend()
	st := store.New(backend, nil)
	_, err := st.Save(trophy.DemoAchievements())
	require.NoError(t, err)

	require.NoError(t, st.SaveScope("Undertale"))
	assert.Equal(t, "Undertale", Open(st, nil, Defaults{}).Scope())

	require.NoError(t, st.SaveScope("Deleted Game"))
	assert.Equal(t, trophy.AllGames, Open(st, nil, Defaults{}).Scope())
	assert.Equal(t, trophy.AllGames, st.LoadScope())
}

func TestSeedDemoPersists(t *testing.T) {
	tr, st := newDemoTracker(t)

	assert.Len(t, tr.Achievements(), 20)
	assert.Len(t, st.Load(), 20)
	assert.False(t, tr.IsEmpty())
}

func TestSetScope(t *testing.T) {
	tr, st := newDemoTracker(t)

	require.NoError(t, tr.SetScope("Portal 2"))
	assert.Equal(t, "Portal 2", st.LoadScope())
	assert.Len(t, tr.View("", query.StatusNone), 5)

	err := tr.SetScope("Nope")
	assert.ErrorIs(t, err, trophy.ErrValidation)
	assert.Equal(t, "Portal 2", tr.Scope())

	require.NoError(t, tr.SetScope(""))
	assert.Equal(t, trophy.AllGames, tr.Scope())
}

func TestView(t *testing.T) {
	tr, _ := newDemoTracker(t)
	require.NoError(t, tr.SetScope("Portal 2"))

	view := tr.View("heart", query.StatusIncomplete)
	require.Len(t, view, 1)
	assert.Equal(t, "Heartbreaker", view[0].Name)
}

func TestFind(t *testing.T) {
	tr, _ := newDemoTracker(t)

	assert.Equal(t, "Pacifist", find(t, tr, "8").Name)
	assert.Equal(t, "8", find(t, tr, "pacifist").ID)

	_, err := tr.Find("Malenia")
	assert.ErrorIs(t, err, trophy.ErrValidation)
	assert.Contains(t, trophy.UserMessage(err), `Did you mean "Shardbearer Malenia" [17]?`)

	_, err = tr.Find("zzzzzz")
	assert.Equal(t, `No achievement matches "zzzzzz"`, trophy.UserMessage(err))
}

func TestToggle(t *testing.T) {
	tr, st := newDemoTracker(t)

	msg, err := tr.Toggle("1")
	require.NoError(t, err)
	assert.Equal(t, "Heartbreaker marked as completed", msg)
	heart := find(t, tr, "1")
	assert.True(t, heart.Achieved)
	assert.Equal(t, 100, heart.Progress)

	msg, err = tr.Toggle("Heartbreaker")
	require.NoError(t, err)
	assert.Equal(t, "Heartbreaker marked as incomplete", msg)
	assert.Equal(t, 0, find(t, tr, "1").Progress)

	stored := st.Load()
	assert.False(t, stored[0].Achieved)
}

func TestSyncTextHeuristic(t *testing.T) {
	tr, st := newDemoTracker(t)

	msg, err := tr.SyncText("Heartbreaker\nUnlocked Mar 1, 2021 @ 4:12pm\nLambda Locator\n5 / 20", false)
	require.NoError(t, err)
	assert.Equal(t, "Synced 1 completed and updated progress for 1 achievements!", msg)
	assert.True(t, find(t, tr, "1").Achieved)
	assert.Equal(t, 25, find(t, tr, "4").Progress)

	stored := st.Load()
	assert.True(t, stored[0].Achieved)
}

func TestSyncTextNoMatch(t *testing.T) {
	tr, _ := newDemoTracker(t)
	before := tr.Revision()

	_, err := tr.SyncText("nothing to see here", false)
	assert.ErrorIs(t, err, trophy.ErrNoMatch)
	assert.Equal(t, `No updates detected. Make sure you copied the "Unlocked" status or progress counters.`, trophy.UserMessage(err))
	assert.Equal(t, before, tr.Revision(), "nothing is persisted")
}

func TestSyncTextEmpty(t *testing.T) {
	tr, _ := newDemoTracker(t)

	_, err := tr.SyncText("  \n", false)
	assert.ErrorIs(t, err, trophy.ErrMalformedInput)
	assert.Equal(t, "Please paste some text first.", trophy.UserMessage(err))
}

func TestSyncTextWithoutTargets(t *testing.T) {
	st := store.New(store.NewMemoryBackend(), nil)
	tr := Open(st, nil, Defaults{})

	_, err := tr.SyncText("Heartbreaker unlocked 1 Jan", false)
	assert.ErrorIs(t, err, trophy.ErrValidation)
	assert.Equal(t, "No achievements found.", trophy.UserMessage(err))
}

func TestSyncTextOverwriteScoped(t *testing.T) {
	tr, _ := newDemoTracker(t)
	require.NoError(t, tr.SetScope("Portal 2"))

	msg, err := tr.SyncText("a paste that names nothing", true)
	require.NoError(t, err)
	assert.Equal(t, "Fresh sync complete for Portal 2!", msg)

	for _, a := range tr.View("", query.StatusNone) {
		assert.False(t, a.Achieved, a.Name)
		assert.Equal(t, 0, a.Progress, a.Name)
	}
	assert.True(t, find(t, tr, "9").Achieved, "other games keep their progress")
}

func TestSyncTextJSONMerge(t *testing.T) {
	tr, _ := newDemoTracker(t)

	msg, err := tr.SyncText(`{"achievements":[{"id":"2","name":"Still Alive","progress":50}]}`, false)
	require.NoError(t, err)
	assert.Equal(t, "Progress updated from JSON!", msg)

	still := find(t, tr, "2")
	assert.Equal(t, 50, still.Progress)
	assert.Equal(t, "Portal 2", still.Game)
}

func TestSyncTextJSONRejectsNameless(t *testing.T) {
	tr, _ := newDemoTracker(t)
	before := tr.Achievements()

	_, err := tr.SyncText(`[{"description":"x"}]`, false)
	assert.ErrorIs(t, err, trophy.ErrMalformedInput)
	assert.Equal(t, "Invalid data: Achievements must have a name property.", trophy.UserMessage(err))
	assert.Equal(t, before, tr.Achievements())
}

func TestSyncTextJSONLenientFields(t *testing.T) {
	tr, _ := newDemoTracker(t)
	require.NoError(t, tr.SetScope("Portal 2"))

	msg, err := tr.SyncText(`[{"id":"2","name":"Still Alive","progress":"50"}]`, true)
	require.NoError(t, err)
	assert.Equal(t, "Data overwritten for current view!", msg)

	portal := query.InScope(tr.Achievements(), "Portal 2")
	require.Len(t, portal, 1)
	assert.Equal(t, "Still Alive", portal[0].Name)
	assert.Equal(t, 50, portal[0].Progress)

	require.NoError(t, tr.SetScope(trophy.AllGames))
	msg, err = tr.SyncText(`[{"id":"9","name":"Gravity Master","achieved":0,"favorite":1}]`, false)
	require.NoError(t, err)
	assert.Equal(t, "Progress updated from JSON!", msg)
	gravity := find(t, tr, "9")
	assert.False(t, gravity.Achieved)
	assert.True(t, gravity.Favorite)
}

func TestSyncTextJSONBadFieldsNeverReachTextMatcher(t *testing.T) {
	for _, text := range []string{
		`[{"id":"2","name":"Still Alive","progress":"half"}]`,
		`[{"id":"2","name":"Still Alive","achieved":"maybe"}]`,
		`{"achievements":[{"id":"2","name":["Still Alive"]}]}`,
		`[1, 2, 3]`,
	} {
		t.Run(text, func(t *testing.T) {
			tr, _ := newDemoTracker(t)
			require.NoError(t, tr.SetScope("Portal 2"))
			before := tr.Achievements()

			_, err := tr.SyncText(text, true)
			assert.ErrorIs(t, err, trophy.ErrMalformedInput)
			assert.Equal(t, before, tr.Achievements())

			_, err = tr.ProposeOverwriteSync(text)
			assert.ErrorIs(t, err, trophy.ErrMalformedInput)
		})
	}
}

func TestSyncTextJSONMergeNormalizes(t *testing.T) {
	tr, _ := newDemoTracker(t)

	_, err := tr.SyncText(`[{"id":"2","name":"Still Alive","priority":"urgent","progress":250}]`, false)
	require.NoError(t, err)

	still := find(t, tr, "2")
	assert.Equal(t, trophy.PriorityMedium, still.Priority)
	assert.Equal(t, 100, still.Progress)
}

func TestSyncTextJSONOverwriteScoped(t *testing.T) {
	tr, _ := newDemoTracker(t)
	require.NoError(t, tr.SetScope("Terraria"))

	msg, err := tr.SyncText(`[{"id":"x1","name":"Only One","game":"Celeste"}]`, true)
	require.NoError(t, err)
	assert.Equal(t, "Data overwritten for current view!", msg)
	assert.Equal(t, "Terraria", tr.Scope(), "scoped overwrite keeps the scoped game")

	list := tr.Achievements()
	terraria := query.InScope(list, "Terraria")
	require.Len(t, terraria, 1)
	assert.Equal(t, "Only One", terraria[0].Name)
}

func TestImport(t *testing.T) {
	tr, st := newDemoTracker(t)
	require.NoError(t, tr.SetScope("Elden Ring"))

	code, err := codec.Encode([]trophy.Achievement{
		{ID: "a", Game: "Celeste", Name: "Summit", Priority: trophy.PriorityHigh, Rarity: trophy.RarityRare},
		{ID: "a", Game: "Celeste", Name: "Duplicate"},
		{ID: "b", Game: "Celeste", Name: "Strawberry"},
	})
	require.NoError(t, err)

	msg, err := tr.Import(code)
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 achievements!", msg)
	assert.Len(t, st.Load(), 2)
	assert.Equal(t, trophy.AllGames, tr.Scope())
	assert.Equal(t, trophy.PriorityMedium, find(t, tr, "b").Priority)
}

func TestImportValidation(t *testing.T) {
	tr, st := newDemoTracker(t)

	_, err := tr.Import(`[{"description":"x"}]`)
	assert.ErrorIs(t, err, trophy.ErrMalformedInput)
	assert.Len(t, st.Load(), 20, "store unchanged")

	_, err = tr.Import("STH1:!!!")
	assert.ErrorIs(t, err, trophy.ErrCorruptData)

	_, err = tr.Import("")
	assert.ErrorIs(t, err, trophy.ErrMalformedInput)
}

func TestExportRoundTrip(t *testing.T) {
	tr, _ := newDemoTracker(t)

	code, err := tr.Export()
	require.NoError(t, err)

	decoded, err := codec.Decode(code)
	require.NoError(t, err)
	assert.Equal(t, tr.Achievements(), decoded)
}

func TestAddGame(t *testing.T) {
	tr, st := newDemoTracker(t)

	msg, err := tr.AddGame(context.Background(), " 504230 ", "Celeste", catalog.TemplateFetcher{})
	require.NoError(t, err)
	assert.Equal(t, "Added Celeste with 5 achievements!", msg)
	assert.Len(t, st.Load(), 25)
	assert.Equal(t, "Celeste", find(t, tr, "504230_0").Game)
}

func TestAddGameValidation(t *testing.T) {
	tr, _ := newDemoTracker(t)
	_, err := tr.AddGame(context.Background(), "620", "Portal Reloaded", catalog.TemplateFetcher{})
	require.NoError(t, err)

	tests := []struct {
		appID, name, message string
	}{
		{"", "X", "Please enter a Steam App ID"},
		{"12a", "X", "App ID must be a number"},
		{"12", " ", "Please enter the game name"},
		{"12", "Portal 2", `Game "Portal 2" is already added!`},
		{"620", "Other", `App ID 620 is already tracked as "Portal Reloaded"`},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			_, err := tr.AddGame(context.Background(), tt.appID, tt.name, catalog.TemplateFetcher{})
			assert.ErrorIs(t, err, trophy.ErrValidation)
			assert.Equal(t, tt.message, trophy.UserMessage(err))
		})
	}
}

func TestAddGameFetchFailures(t *testing.T) {
	tr, _ := newDemoTracker(t)
	before := tr.Revision()

	failing := catalog.FetcherFunc(func(context.Context, string, string) ([]trophy.Achievement, error) {
		return nil, errors.New("All proxies failed to fetch data")
	})
	_, err := tr.AddGame(context.Background(), "1", "G", failing)
	assert.ErrorIs(t, err, trophy.ErrExternalFetch)
	assert.Equal(t, "Error: All proxies failed to fetch data", trophy.UserMessage(err))

	empty := catalog.FetcherFunc(func(context.Context, string, string) ([]trophy.Achievement, error) {
		return nil, nil
	})
	_, err = tr.AddGame(context.Background(), "1", "G", empty)
	assert.Equal(t, "Error: No achievements found", trophy.UserMessage(err))

	assert.Equal(t, before, tr.Revision())
}

func TestDeleteGame(t *testing.T) {
	tr, st := newDemoTracker(t)
	require.NoError(t, tr.SetScope("Half-Life 2"))

	msg, err := tr.DeleteGame("")
	require.NoError(t, err)
	assert.Equal(t, `Deleted "Half-Life 2" and 3 achievements.`, msg)
	assert.Equal(t, trophy.AllGames, tr.Scope())
	assert.Equal(t, trophy.AllGames, st.LoadScope())
	assert.Len(t, tr.Achievements(), 17)

	_, err = tr.DeleteGame("")
	assert.ErrorIs(t, err, trophy.ErrValidation)
	_, err = tr.DeleteGame("Half-Life 2")
	assert.ErrorIs(t, err, trophy.ErrValidation)
}

func TestClear(t *testing.T) {
	tr, st := newDemoTracker(t)
	require.NoError(t, tr.SetScope("Undertale"))

	msg, err := tr.Clear()
	require.NoError(t, err)
	assert.Equal(t, "All data cleared", msg)
	assert.True(t, tr.IsEmpty())
	assert.Empty(t, st.Load())
	assert.Equal(t, trophy.AllGames, tr.Scope())
}

func TestSettings(t *testing.T) {
	tr, st := newDemoTracker(t)

	require.NoError(t, tr.SetAIProvider("perplexity"))
	require.NoError(t, tr.SetGuideLanguage("Korean"))
	assert.ErrorIs(t, tr.SetAIProvider("bard"), trophy.ErrValidation)
	assert.ErrorIs(t, tr.SetGuideLanguage(" "), trophy.ErrValidation)

	reopened := Open(st, nil, Defaults{AIProvider: "claude"})
	assert.Equal(t, guide.ProviderPerplexity, reopened.AIProvider())
	assert.Equal(t, "Korean", reopened.GuideLanguage())
}

func TestFailedSaveLeavesStateUntouched(t *testing.T) {
	backend := &failingBackend{MemoryBackend: store.NewMemoryBackend()}
	st := store.New(backend, nil)
	tr := Open(st, nil, Defaults{})
	_, err := tr.SeedDemo()
	require.NoError(t, err)

	backend.fail = true
	before := tr.Achievements()
	revision := tr.Revision()

	_, err = tr.Toggle("1")
	assert.Error(t, err)
	_, err = tr.SyncText("Lambda Locator 19 / 20", false)
	assert.Error(t, err)

	assert.Equal(t, before, tr.Achievements())
	assert.Equal(t, revision, tr.Revision())
}
