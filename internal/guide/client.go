package guide

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/robottwo/trophy/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyPrompt is returned when there is nothing to send
var ErrEmptyPrompt = errors.New("empty prompt")

// Client sends prompts to an OpenAI-compatible chat endpoint
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a client for cfg. Missing base URL and API key are filled
// in from the provider.
func NewClient(cfg config.LLM) *Client {
	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = "ollama"
	}

	apiKey := cfg.APIKey
	baseURL := cfg.BaseURL

	switch provider {
	case "openai":
		if apiKey == "" {
			apiKey = "sk-" // Placeholder, user should provide real key
		}
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
	case "openrouter":
		if apiKey == "" {
			apiKey = "sk-or-" // Placeholder, user should provide real key
		}
		if baseURL == "" {
			baseURL = "https://openrouter.ai/api/v1"
		}
	default: // "ollama" or unknown
		if apiKey == "" {
			apiKey = "ollama"
		}
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1/"
		}
	}

	model := cfg.Model
	if model == "" {
		model = "qwen2.5"
	}

	headers := make(map[string]string, len(cfg.Headers)+2)
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	if provider == "openrouter" || strings.HasPrefix(strings.ToLower(baseURL), "https://openrouter.ai/") {
		headers["HTTP-Referer"] = "https://github.com/robottwo/trophy"
		headers["X-Title"] = "trophy - achievement tracker"
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = baseURL
	clientConfig.HTTPClient = &http.Client{Transport: &headerTransport{headers: headers, next: http.DefaultTransport}}

	return &Client{
		api:   openai.NewClientWithConfig(clientConfig),
		model: model,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Ask sends prompt as a single user message and returns the reply text
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type headerTransport struct {
	headers map[string]string
	next    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.next.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.next.RoundTrip(req)
}
