// Package config holds the lorecheck configuration model.
package config

import "time"

// Config is the full configuration tree. Hierarchy (highest to lowest
// priority): CLI flags, LORECHECK_* environment variables, config file
// (~/.lorecheck/config.yaml), defaults.
type Config struct {
	Parser      ParserConfig      `yaml:"parser" mapstructure:"parser"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// ParserConfig controls date-expression resolution.
type ParserConfig struct {
	ForwardDate bool   `yaml:"forward_date" mapstructure:"forward_date"` // bias ambiguous relative phrases toward the future
	Timezone    string `yaml:"timezone" mapstructure:"timezone"`         // IANA zone name for offset-less instants
	Locale      string `yaml:"locale" mapstructure:"locale"`             // display locale, e.g. en-US
}

// CacheConfig controls parse-result memoization across runs.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// LLMConfig configures the optional conflict-report summarizer. It never
// affects detection output and is disabled by default.
type LLMConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"` // "openai", "ollama", "" (disabled)
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerMinute float64 `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			ForwardDate: false,
			Timezone:    "",
			Locale:      "en-US",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:          "", // disabled by default
			Model:             "",
			Timeout:           30,
			MaxTokens:         1000,
			RequestsPerMinute: 20,
		},
	}
}
