package guide

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/robottwo/trophy/internal/config"
	"github.com/robottwo/trophy/internal/trophy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinglePrompt(t *testing.T) {
	a := trophy.DemoAchievements()[0]

	prompt := SinglePrompt(a, "English")

	assert.True(t, strings.HasPrefix(prompt, "INSTRUCTION: SINGLE ACHIEVEMENT DATA SHEET\n"))
	assert.Contains(t, prompt, `GAME: "Portal 2"`)
	assert.Contains(t, prompt, `ACHIEVEMENT: "Heartbreaker"`)
	assert.Contains(t, prompt, `DESCRIPTION: "Complete the game in co-op mode"`)
	assert.Contains(t, prompt, "6. LANGUAGE: Generate the entire response in English.")
	assert.Contains(t, prompt, "EXAMPLE (IN English):")
	assert.True(t, strings.HasSuffix(prompt, "| Must be done during Night |"))
}

func TestSinglePromptDefaultLanguage(t *testing.T) {
	prompt := SinglePrompt(trophy.Achievement{Name: "X"}, " ")
	assert.Contains(t, prompt, "in Chinese.")
}

func TestBulkPrompt(t *testing.T) {
	prompt := BulkPrompt("Half-Life 2", trophy.DemoAchievements(), "German")

	assert.Contains(t, prompt, `GAME: "Half-Life 2"`)
	assert.Contains(t, prompt, "DATASET:\nLambda Locator: Find all lambda caches\nZombie Chopper: Kill 1000 zombies with the gravity gun\n\nSTRICT OUTPUT RULES:")
	assert.NotContains(t, prompt, "Gravity Master", "completed achievements are left out")
	assert.NotContains(t, prompt, "Heartbreaker", "other games are left out")
	assert.Contains(t, prompt, "including headers and descriptions, in German.")
	assert.Contains(t, prompt, "EXAMPLE MASTER SHEET (IN German):")
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p)

	p, err = ParseProvider(" Claude ")
	require.NoError(t, err)
	assert.Equal(t, ProviderClaude, p)

	_, err = ParseProvider("bard")
	assert.ErrorIs(t, err, trophy.ErrValidation)
}

func TestLaunchURL(t *testing.T) {
	prompt := `GAME: "Portal 2" & 100% co-op+`

	tests := []struct {
		provider Provider
		prefix   string
	}{
		{ProviderClaude, "https://claude.ai/new?q="},
		{ProviderGemini, "https://gemini.google.com/app?q="},
		{ProviderPerplexity, "https://www.perplexity.ai/search?q="},
		{ProviderChatGPT, "https://chatgpt.com/?q="},
		{Provider("unknown"), "https://chatgpt.com/?q="},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			got := LaunchURL(tt.provider, prompt)
			assert.Equal(t, tt.prefix+"GAME%3A%20%22Portal%202%22%20%26%20100%25%20co-op%2B", got)
		})
	}
}

func TestClientAsk(t *testing.T) {
	var gotPath, gotAuth, gotTitle string
	var gotRequest struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotTitle = r.Header.Get("X-Title")
		_ = json.NewDecoder(r.Body).Decode(&gotRequest)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"| 1 | Do it |"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	client := NewClient(config.LLM{
		Provider: "openai",
		BaseURL:  server.URL + "/v1",
		APIKey:   "sk-test",
		Model:    "gpt-test",
		Headers:  map[string]string{"X-Title": "custom"},
	})
	assert.Equal(t, "gpt-test", client.Model())

	reply, err := client.Ask(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "| 1 | Do it |", reply)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "custom", gotTitle)
	assert.Equal(t, "gpt-test", gotRequest.Model)
	require.Len(t, gotRequest.Messages, 1)
	assert.Equal(t, "user", gotRequest.Messages[0].Role)
	assert.Equal(t, "hello", gotRequest.Messages[0].Content)
}

func TestClientAskEmptyPrompt(t *testing.T) {
	_, err := NewClient(config.LLM{}).Ask(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestClientDefaults(t *testing.T) {
	assert.Equal(t, "qwen2.5", NewClient(config.LLM{}).Model())
}
