package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/robottwo/trophy/internal/core"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override
const EnvPrefix = "TROPHY_"

// LLM configures the optional OpenAI-compatible endpoint used by guide --send
type LLM struct {
	// Provider is one of ollama, openai or openrouter
	Provider string            `yaml:"provider" env:"PROVIDER"`
	BaseURL  string            `yaml:"base_url" env:"BASE_URL"`
	APIKey   string            `yaml:"api_key" env:"API_KEY"`
	Model    string            `yaml:"model" env:"MODEL"`
	Headers  map[string]string `yaml:"headers" env:"HEADERS"`
}

type Config struct {
	DataDir       string `yaml:"data_dir" env:"DATA_DIR"`
	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL"`
	CleanLogFile  bool   `yaml:"clean_log_file" env:"CLEAN_LOG_FILE"`
	AIProvider    string `yaml:"ai_provider" env:"AI_PROVIDER"`
	GuideLanguage string `yaml:"guide_language" env:"GUIDE_LANGUAGE"`
	LLM           LLM    `yaml:"llm" envPrefix:"LLM_"`
}

// Default returns the built-in configuration rooted at dataDir
func Default(dataDir string) Config {
	return Config{
		DataDir:       dataDir,
		LogLevel:      "info",
		AIProvider:    "gemini",
		GuideLanguage: "Chinese",
		LLM: LLM{
			Provider: "ollama",
			Model:    "qwen2.5",
		},
	}
}

// Paths lays out the data files under the configured data directory
func (c Config) Paths() core.Paths {
	return core.PathsIn(c.DataDir)
}

// Load resolves the configuration: built-in defaults, then config.yaml in
// the data directory, then TROPHY_* environment variables. environ maps
// variable names to values; nil means the process environment.
func Load(environ map[string]string) (Config, error) {
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}

	dataDir := environ[core.DataDirEnv]
	if dataDir == "" {
		dataDir = core.DataDir()
	}

	cfg := Default(dataDir)
	if err := readFile(cfg.Paths().ConfigFile, &cfg); err != nil {
		return cfg, err
	}

	opts := env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	dataDir := cfg.DataDir
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	// the file lives inside the data dir, so it cannot move it
	cfg.DataDir = dataDir
	return nil
}

// Write saves cfg to its config.yaml
func Write(cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(cfg.Paths().ConfigFile, data, 0600)
}

// Update applies changes to the config.yaml in dataDir. The saved file holds
// the defaults and its own previous values; environment overrides stay out.
func Update(dataDir string, apply func(*Config)) error {
	cfg := Default(dataDir)
	if err := readFile(cfg.Paths().ConfigFile, &cfg); err != nil {
		return err
	}
	apply(&cfg)
	return Write(cfg)
}
