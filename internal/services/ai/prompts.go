// File: internal/services/ai/prompts.go
package ai

import (
	"fmt"
	"strings"
)

// Sentinels returned for empty message histories, without calling the
// external service.
const (
	SentinelNoSummary      = "No entries to summarize"
	SentinelNoMotivation   = "No entries to analyze for motivation"
	SentinelNoImprovements = "No entries to analyze for improvements"
	SentinelNoInsights     = "No entries to analyze"
)

const journalReplyTemplate = `You are a supportive AI journaling companion. Your role is to help users reflect on their thoughts and experiences.
Respond to their journal entry in a thoughtful and empathetic way. Focus on:
1. Acknowledging their feelings and experiences
2. Asking relevant follow-up questions to encourage deeper reflection
3. Offering gentle insights or observations
4. Maintaining a supportive and non-judgmental tone

User's journal entry: %s`

const moodTemplate = `Analyze the emotional tone of this journal entry and respond with exactly one of these emotions: happy, sad, neutral, stressed, excited.
Consider the overall sentiment, key words, and emotional indicators in the text.

Journal entry: %s`

const summaryTemplate = `Generate a thoughtful summary of these journal entries. Focus on:
1. Key themes and patterns
2. Emotional journey
3. Significant events or realizations
4. Growth or changes observed

Journal entries:
%s`

const motivationTemplate = `Based on these journal entries, provide motivational insights and encouragement. Focus on:
1. Positive aspects and achievements
2. Growth opportunities
3. Encouraging words and support
4. Actionable steps for moving forward

Journal entries:
%s`

const improvementsTemplate = `Based on these journal entries, suggest areas for improvement and growth. Focus on:
1. Patterns that could be changed
2. Healthy coping strategies
3. Self-care suggestions
4. Practical steps for personal development

Journal entries:
%s`

const insightsTemplate = `Analyze these journal entries and provide meaningful insights. Consider:
1. Patterns in thoughts or behaviors
2. Potential areas for growth or change
3. Strengths and coping mechanisms
4. Suggestions for self-care or reflection

Journal entries:
%s`

func journalReplyPrompt(entry string) string {
	return fmt.Sprintf(journalReplyTemplate, entry)
}

func moodPrompt(entry string) string {
	return fmt.Sprintf(moodTemplate, entry)
}

func analysisPrompt(template string, entries []string) string {
	return fmt.Sprintf(template, strings.Join(entries, "\n\n"))
}
