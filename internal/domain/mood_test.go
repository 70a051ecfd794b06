// File: internal/domain/mood_test.go
package domain

import "testing"

func TestNormalizeMood(t *testing.T) {
	cases := []struct {
		raw  string
		want Mood
	}{
		{"happy", MoodHappy},
		{"  Excited  ", MoodExcited},
		{"STRESSED", MoodStressed},
		{"sad", MoodSad},
		{"neutral", MoodNeutral},
		{"melancholic", MoodNeutral},
		{"", MoodNeutral},
		{"happy.", MoodNeutral},
	}
	for _, tc := range cases {
		if got := NormalizeMood(tc.raw); got != tc.want {
			t.Errorf("NormalizeMood(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestHashPasswordRejectsShortInput(t *testing.T) {
	var u User
	if err := u.HashPassword("12345"); err == nil {
		t.Error("expected error for password under the minimum length")
	}

	if err := u.HashPassword("123456"); err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if u.Password == "123456" {
		t.Error("hash must differ from the plaintext")
	}
	if err := u.ValidatePassword("123456"); err != nil {
		t.Errorf("ValidatePassword: %v", err)
	}
	if err := u.ValidatePassword("wrong"); err == nil {
		t.Error("expected mismatch for a wrong password")
	}
}
