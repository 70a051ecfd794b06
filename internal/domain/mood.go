// File: internal/domain/mood.go
package domain

import "strings"

// Mood is the closed set of emotional-tone labels attached to AI messages.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodNeutral  Mood = "neutral"
	MoodStressed Mood = "stressed"
	MoodExcited  Mood = "excited"
)

var validMoods = map[Mood]bool{
	MoodHappy:    true,
	MoodSad:      true,
	MoodNeutral:  true,
	MoodStressed: true,
	MoodExcited:  true,
}

// NormalizeMood maps a raw model answer onto the closed label set. Anything
// that does not parse into one of the five labels becomes neutral.
func NormalizeMood(raw string) Mood {
	m := Mood(strings.ToLower(strings.TrimSpace(raw)))
	if validMoods[m] {
		return m
	}
	return MoodNeutral
}
