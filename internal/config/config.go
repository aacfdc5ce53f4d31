// Package config provides configuration types and helpers for onediff.
package config

import (
	"fmt"
	"strings"
)

// Output formats accepted in the "format" key.
var validFormats = map[string]bool{"text": true, "json": true, "table": true}

// Config holds the application-wide configuration.
type Config struct {
	Format            string       `mapstructure:"format"`
	Verbose           bool         `mapstructure:"verbose"`
	NoColor           bool         `mapstructure:"no_color"`
	TimestampPrefixes []string     `mapstructure:"timestamp_prefixes"`
	Report            ReportConfig `mapstructure:"report"`
	LLM               LLMConfig    `mapstructure:"llm"`
}

// ReportConfig controls which groups are rendered.
type ReportConfig struct {
	// MinSentences hides groups with fewer lines. 1 shows every group,
	// 2 hides lines that matched nothing.
	MinSentences int `mapstructure:"min_sentences"`
}

// LLMConfig holds configuration for the pattern explainer.
type LLMConfig struct {
	// Provider selects which LLM to use. Only "ollama" is supported.
	Provider string `mapstructure:"provider"`

	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	// Redact masks sensitive values in lines sent to the model.
	Redact bool `mapstructure:"redact"`

	// RedactPatterns names the built-in patterns to apply. Empty selects
	// the default set.
	RedactPatterns []string `mapstructure:"redact_patterns"`

	Ollama OllamaConfig `mapstructure:"ollama"`
}

// OllamaConfig holds Ollama-specific settings.
type OllamaConfig struct {
	Host  string `mapstructure:"host"`  // API endpoint
	Model string `mapstructure:"model"` // Default model name
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if c.Format != "" && !validFormats[strings.ToLower(c.Format)] {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json', or 'table')", c.Format)
	}
	if c.Report.MinSentences < 0 {
		return fmt.Errorf("invalid min_sentences: %d (must not be negative)", c.Report.MinSentences)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("invalid llm temperature: %v (must be between 0 and 2)", c.LLM.Temperature)
	}
	return nil
}
