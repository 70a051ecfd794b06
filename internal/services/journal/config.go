// File: internal/services/journal/config.go
package journal

import "fmt"

type Config struct {
	// Entry bounds
	MaxEntryLength int // max runes in one user entry

	// Title derivation
	TitleMaxWords    int // words taken from the first entry
	TitleMaxLength   int // hard cap in characters
	RetitleThreshold int // retitle only while the thread has at most this many messages

	// Analysis policy: include AI replies when building analysis input.
	// Default is user-authored entries only.
	IncludeAIMessages bool
}

func (c *Config) Validate() error {
	if c.MaxEntryLength <= 0 {
		return fmt.Errorf("max_entry_length must be positive")
	}
	if c.TitleMaxWords <= 0 {
		return fmt.Errorf("title_max_words must be positive")
	}
	if c.TitleMaxLength <= 0 {
		return fmt.Errorf("title_max_length must be positive")
	}
	if c.RetitleThreshold < 0 {
		return fmt.Errorf("retitle_threshold cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		MaxEntryLength:    1000,
		TitleMaxWords:     6,
		TitleMaxLength:    100,
		RetitleThreshold:  2,
		IncludeAIMessages: false,
	}
}
