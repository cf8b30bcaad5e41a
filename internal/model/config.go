package model

import "time"

// Config is the complete claimlens configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Notify  NotifyConfig  `yaml:"notify" mapstructure:"notify"`
	Mirrors MirrorsConfig `yaml:"mirrors" mapstructure:"mirrors"`
}

// ServerConfig controls the HTTP API server
type ServerConfig struct {
	Addr          string   `yaml:"addr" mapstructure:"addr"`
	BaseURL       string   `yaml:"base_url" mapstructure:"base_url"` // Public base URL used in result links
	AllowOrigins  []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	MaxTextLength int      `yaml:"max_text_length" mapstructure:"max_text_length"`
}

// HTTPConfig controls outbound fetching (mirrors, search)
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// LLMConfig holds the language-model provider configuration
type LLMConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"` // "openai" or "ollama"
	Model       string `yaml:"model" mapstructure:"model"`
	VisionModel string `yaml:"vision_model" mapstructure:"vision_model"`
	APIKey      string `yaml:"-" mapstructure:"-"` // From OPENAI_API_KEY, never serialized
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Timeout     int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens   int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SearchConfig holds the web-search provider configuration
type SearchConfig struct {
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	APIKey         string `yaml:"-" mapstructure:"-"` // From BRAVE_API_KEY
	ResultsPerPage int    `yaml:"results_per_page" mapstructure:"results_per_page"`
	Timeout        int    `yaml:"timeout" mapstructure:"timeout"` // seconds
}

// StoreConfig holds result persistence settings
type StoreConfig struct {
	RedisAddr     string        `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisPassword string        `yaml:"-" mapstructure:"-"` // From CLAIMLENS_REDIS_PASSWORD
	RedisDB       int           `yaml:"redis_db" mapstructure:"redis_db"`
	Retention     time.Duration `yaml:"retention" mapstructure:"retention"`
}

// NotifyConfig holds push-notification settings
type NotifyConfig struct {
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"` // ntfy-style topic URL; empty disables notifications
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"`   // seconds
}

// MirrorsConfig lists embeddable mirror hosts tried during URL resolution
type MirrorsConfig struct {
	Hosts []string `yaml:"hosts" mapstructure:"hosts"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:          ":8080",
			BaseURL:       "http://localhost:8080",
			AllowOrigins:  []string{"*"},
			MaxTextLength: 1000,
		},
		HTTP: HTTPConfig{
			Timeout:           15 * time.Second,
			UserAgent:         "Claimlens/0.1 (+https://github.com/claimlens/claimlens)",
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 2,
			RespectRobots:     true,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			VisionModel: "gpt-4o-mini",
			Timeout:     60,
			MaxTokens:   1500,
		},
		Search: SearchConfig{
			BaseURL:        "https://api.search.brave.com/res/v1/web/search",
			ResultsPerPage: 5,
			Timeout:        15,
		},
		Store: StoreConfig{
			RedisAddr: "localhost:6379",
			Retention: 7 * 24 * time.Hour,
		},
		Notify: NotifyConfig{
			Timeout: 10,
		},
		Mirrors: MirrorsConfig{
			Hosts: []string{"nitter.net", "nitter.poast.org"},
		},
	}
}
