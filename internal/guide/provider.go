package guide

import (
	"net/url"
	"strings"

	"github.com/robottwo/trophy/internal/trophy"
)

// Provider is the AI chat site a prompt is launched on
type Provider string

const (
	ProviderClaude     Provider = "claude"
	ProviderGemini     Provider = "gemini"
	ProviderPerplexity Provider = "perplexity"
	ProviderChatGPT    Provider = "chatgpt"

	DefaultProvider = ProviderGemini
)

var Providers = []Provider{ProviderGemini, ProviderChatGPT, ProviderClaude, ProviderPerplexity}

// ParseProvider validates a provider name; "" means the default
func ParseProvider(s string) (Provider, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultProvider, nil
	}
	for _, p := range Providers {
		if string(p) == s {
			return p, nil
		}
	}
	return DefaultProvider, trophy.Invalid("provider", "unknown AI provider %q", s)
}

// LaunchURL returns the address that opens a new chat seeded with prompt.
// Unrecognised providers fall back to ChatGPT.
func LaunchURL(p Provider, prompt string) string {
	q := url.QueryEscape(prompt)
	// QueryEscape encodes spaces as "+", chat sites expect %20
	q = strings.ReplaceAll(q, "+", "%20")

	switch p {
	case ProviderClaude:
		return "https://claude.ai/new?q=" + q
	case ProviderGemini:
		return "https://gemini.google.com/app?q=" + q
	case ProviderPerplexity:
		return "https://www.perplexity.ai/search?q=" + q
	default:
		return "https://chatgpt.com/?q=" + q
	}
}
