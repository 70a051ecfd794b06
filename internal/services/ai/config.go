// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	// LLM Configuration
	APIKey  string
	BaseURL string
	Model   string

	// Performance Configuration. The generation API is the only
	// unbounded-latency dependency, so every call gets this deadline.
	Timeout time.Duration

	// Model Parameters
	Temperature float32
	TopP        float32
	MaxTokens   int
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	if c.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     60 * time.Second,
		Temperature: 0.7,
		TopP:        0.95,
		MaxTokens:   1024,
	}
}
