package textsync

import (
	"testing"

	"github.com/robottwo/trophy/internal/trophy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointers(list []trophy.Achievement) []*trophy.Achievement {
	out := make([]*trophy.Achievement, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out
}

func find(t *testing.T, list []trophy.Achievement, name string) trophy.Achievement {
	t.Helper()
	for _, a := range list {
		if a.Name == name {
			return a
		}
	}
	require.Failf(t, "not found", "achievement %q", name)
	return trophy.Achievement{}
}

func TestApplyMarksUnlocked(t *testing.T) {
	list := trophy.DemoAchievements()

	result := Apply(pointers(list), "Heartbreaker\nComplete the game in co-op mode\nUnlocked Mar 1, 2021 @ 4:12pm", Merge)

	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 0, result.ProgressUpdated)
	assert.True(t, result.Changed())
	assert.Equal(t, "Synced 1 new achievements!", result.Message("Portal 2"))

	heart := find(t, list, "Heartbreaker")
	assert.True(t, heart.Achieved)
	assert.Equal(t, 100, heart.Progress)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, Change{ID: "1", Name: "Heartbreaker", Completed: true, Progress: 100}, result.Changes[0])
}

func TestApplyAlreadyAchievedIsNotCounted(t *testing.T) {
	list := trophy.DemoAchievements()

	result := Apply(pointers(list), "Still Alive unlocked Mar 1, 2021", Merge)

	assert.Equal(t, 0, result.Synced)
	assert.False(t, result.Changed())
	assert.Equal(t, NoUpdatesMessage, result.Message(trophy.AllGames))
	assert.True(t, find(t, list, "Still Alive").Achieved)
}

func TestApplyProgressIsMonotonic(t *testing.T) {
	list := trophy.DemoAchievements()
	targets := pointers(list)

	result := Apply(targets, "Lambda Locator\nFind all lambda caches\n5 / 20", Merge)
	assert.Equal(t, 1, result.ProgressUpdated)
	assert.Equal(t, "Updated progress for 1 achievements!", result.Message("Half-Life 2"))
	assert.Equal(t, 25, find(t, list, "Lambda Locator").Progress)

	result = Apply(targets, "Lambda Locator\n3 / 20", Merge)
	assert.Equal(t, 0, result.ProgressUpdated)
	assert.Equal(t, 25, find(t, list, "Lambda Locator").Progress)

	result = Apply(targets, "Lambda Locator\n5 / 20", Merge)
	assert.False(t, result.Changed(), "equal progress is not an update")
}

func TestApplyProgressNeverCompletes(t *testing.T) {
	list := trophy.DemoAchievements()

	Apply(pointers(list), "Zombie Chopper 1000 / 1000", Merge)

	zombie := find(t, list, "Zombie Chopper")
	assert.False(t, zombie.Achieved)
	assert.Equal(t, 99, zombie.Progress)
}

func TestApplyIgnoresConditionalHint(t *testing.T) {
	list := trophy.DemoAchievements()

	result := Apply(pointers(list), "Heartbreaker: once unlocked 12 new skins appear", Merge)

	assert.Equal(t, 0, result.Synced)
	heart := find(t, list, "Heartbreaker")
	assert.False(t, heart.Achieved)
	assert.Equal(t, 60, heart.Progress)
}

func TestApplyBothCounters(t *testing.T) {
	list := trophy.DemoAchievements()

	text := "Pacifist Unlocked 14 Feb, 2020\nTrue Hero\n40 / 100"
	result := Apply(pointers(list), text, Merge)

	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 1, result.ProgressUpdated)
	assert.Equal(t, "Synced 1 completed and updated progress for 1 achievements!", result.Message("Undertale"))
}

func TestApplyOverwriteResetsUnmatched(t *testing.T) {
	list := trophy.DemoAchievements()

	var portal []*trophy.Achievement
	for i := range list {
		if list[i].Game == "Portal 2" {
			portal = append(portal, &list[i])
		}
	}

	result := Apply(portal, "text that names none of them", Overwrite)

	assert.True(t, result.Changed())
	assert.Equal(t, 0, result.Synced)
	assert.Equal(t, "Fresh sync complete for Portal 2!", result.Message("Portal 2"))
	for _, a := range portal {
		assert.False(t, a.Achieved, a.Name)
		assert.Equal(t, 0, a.Progress, a.Name)
	}

	assert.True(t, find(t, list, "Gravity Master").Achieved, "achievements outside the targets are untouched")
}

func TestApplyOverwriteReappliesText(t *testing.T) {
	list := trophy.DemoAchievements()

	result := Apply(pointers(list), "Still Alive Unlocked Jan 2 2020\nProfessor Portal 2 / 8", Overwrite)

	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 1, result.ProgressUpdated)
	assert.Equal(t, "Fresh sync complete for all games!", result.Message(trophy.AllGames))
	assert.True(t, find(t, list, "Still Alive").Achieved)
	assert.Equal(t, 25, find(t, list, "Professor Portal").Progress)
	assert.False(t, find(t, list, "Friendly Fire").Achieved)
}
