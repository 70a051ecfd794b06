// File: internal/services/journal/titles_test.go
package journal

import "testing"

func TestDeriveTitle(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name  string
		entry string
		want  string
	}{
		{"short entry", "Feeling good today", "Feeling good today"},
		{"truncated to word limit", "I had a great day at the beach today", "I had a great day at"},
		{"trailing punctuation stripped", "What a day!", "What a day"},
		{"whitespace collapsed", "  so   much \n space  ", "so much space"},
		{"blank entry", "   \n\t ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cfg.DeriveTitle(tc.entry); got != tc.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tc.entry, got, tc.want)
			}
		})
	}
}

func TestDeriveTitleRespectsLengthCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TitleMaxWords = 3
	cfg.TitleMaxLength = 10

	got := cfg.DeriveTitle("supercalifragilistic expialidocious words here")
	if len([]rune(got)) > 10 {
		t.Errorf("title %q exceeds the length cap", got)
	}
}

func TestTruncateText(t *testing.T) {
	cases := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "hé"},
		{"", 5, ""},
		{"hello", 0, ""},
	}
	for _, tc := range cases {
		if got := TruncateText(tc.in, tc.maxLen); got != tc.want {
			t.Errorf("TruncateText(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	cfg.MaxEntryLength = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero entry length")
	}
}
