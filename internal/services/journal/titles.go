// File: internal/services/journal/titles.go
package journal

import (
	"strings"
	"unicode/utf8"
)

// CleanWhitespace normalizes whitespace in text for better processing.
func CleanWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// TruncateText safely truncates a UTF-8 string to maxLen runes, preserving
// character integrity.
func TruncateText(input string, maxLen int) string {
	if input == "" || maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(input) <= maxLen {
		return input
	}

	var b strings.Builder
	count := 0
	for _, r := range input {
		if count >= maxLen {
			break
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}

// DeriveTitle builds a session title from the first words of an entry.
// Returns "" when the entry has no usable words; callers keep the default
// title in that case.
func (c *Config) DeriveTitle(entry string) string {
	cleaned := CleanWhitespace(entry)
	if cleaned == "" {
		return ""
	}

	words := strings.Fields(cleaned)
	if len(words) > c.TitleMaxWords {
		words = words[:c.TitleMaxWords]
	}

	title := strings.Join(words, " ")
	title = strings.TrimRight(title, ".,!?;:")
	return TruncateText(title, c.TitleMaxLength)
}
