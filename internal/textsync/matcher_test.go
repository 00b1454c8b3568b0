package textsync

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCompletion(t *testing.T) {
	tests := []struct {
		name    string
		excerpt string
		want    bool
	}{
		{"month first", "still alive unlocked mar 1, 2021 @ 4:12pm", true},
		{"day first", "unlocked 14 feb, 2020", true},
		{"full month name", "earned september 30", true},
		{"two numbers", "unlocked 12 2023", true},
		{"mixed case", "Unlocked Jan 5", true},
		{"no-break space", "unlocked\u00a0mar\u00a01", true},
		{"no date", "unlocked by 3% of players", false},
		{"single date token", "unlocked mar", false},
		{"hint text", "once unlocked 12 new skins become available", false},
		{"hint text elsewhere in window", "earned 3 4 ... once unlocked you gain", false},
		{"nothing", "complete the game in co-op mode", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCompletion(tt.excerpt))
		})
	}
}

func TestDetectProgress(t *testing.T) {
	tests := []struct {
		excerpt string
		want    int
		ok      bool
	}{
		{"lambda locator 5 / 20", 25, true},
		{"1/3 caches", 33, true},
		{"2 /3", 67, true},
		{"999/1000", 99, true},
		{"20 / 20", 99, true},
		{"0 / 10", 0, true},
		{"5 / 0", 0, false},
		{"no counter here", 0, false},
		{"first 1 / 4 then 3 / 4", 25, true},
	}

	for _, tt := range tests {
		t.Run(tt.excerpt, func(t *testing.T) {
			got, ok := DetectProgress(tt.excerpt)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExcerpt(t *testing.T) {
	text := "prefix " + "heartbreaker" + strings.Repeat("x", 500)

	excerpt, ok := Excerpt(text, "heartbreaker")
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(excerpt, "heartbreaker"))
	assert.Equal(t, ExcerptLength, len([]rune(excerpt)))

	short, ok := Excerpt("zombie chopper 🧟 3 / 4", "zombie chopper")
	assert.True(t, ok)
	assert.Equal(t, "zombie chopper 🧟 3 / 4", short)

	_, ok = Excerpt(text, "pacifist")
	assert.False(t, ok)

	_, ok = Excerpt(text, "")
	assert.False(t, ok, "an empty name never matches")
}

func TestExcerptCountsCharactersNotBytes(t *testing.T) {
	text := "name" + strings.Repeat("é", 400)
	excerpt, ok := Excerpt(text, "name")
	assert.True(t, ok)
	assert.Equal(t, ExcerptLength, len([]rune(excerpt)))
}

func TestMatchName(t *testing.T) {
	m := MatchName("Still Alive\nUnlocked Mar 1, 2021 @ 4:12pm", "STILL ALIVE")
	assert.True(t, m.Found)
	assert.True(t, m.Completed)

	m = MatchName("Lambda Locator\n5 / 20", "Lambda Locator")
	assert.True(t, m.Found)
	assert.False(t, m.Completed)
	assert.True(t, m.HasProgress)
	assert.Equal(t, 25, m.Progress)

	assert.Equal(t, Match{}, MatchName("nothing relevant", "Pacifist"))
}

func TestLooksLikeTrackerText(t *testing.T) {
	long := strings.Repeat("a", 301)

	assert.True(t, LooksLikeTrackerText(long+" Unlocked"))
	assert.True(t, LooksLikeTrackerText(long+" earned"))
	assert.True(t, LooksLikeTrackerText(long+" @ 4:12pm"))
	assert.False(t, LooksLikeTrackerText(long))
	assert.False(t, LooksLikeTrackerText("Unlocked"))
}

func TestLooksLikeJSON(t *testing.T) {
	assert.True(t, LooksLikeJSON(`  [{"id":"1","name":"Heartbreaker","progress":60,"achieved":false}]`))
	assert.True(t, LooksLikeJSON(`{"achievements":[{"id":"1","name":"Heartbreaker","x":1}]}`))
	assert.False(t, LooksLikeJSON(`[]`))
	assert.False(t, LooksLikeJSON(strings.Repeat("x", 100)))
}
