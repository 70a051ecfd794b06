// File: internal/services/ai/service.go
package ai

import (
	"context"
	"strings"

	"github.com/MUHMMADSALEH/DevVoid/internal/domain"
)

// Logger matches the services logging interface without importing it.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Service is the Generation Client: a stateless wrapper around the
// completion provider that owns the journaling prompt templates.
type Service struct {
	config   *Config
	provider CompletionProvider
	logger   Logger
}

func NewService(config *Config, provider CompletionProvider, logger Logger) (*Service, error) {
	if config == nil {
		return nil, NewConfigError("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	if provider == nil {
		return nil, NewConfigError("completion provider is required")
	}

	return &Service{config: config, provider: provider, logger: logger}, nil
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()
	return s.provider.GetCompletion(ctx, s.config.Model, prompt)
}

// Complete generates the empathetic journaling reply to one entry.
func (s *Service) Complete(ctx context.Context, entry string) (string, error) {
	reply, err := s.complete(ctx, journalReplyPrompt(entry))
	if err != nil {
		s.logger.Error("journal reply generation failed", "error", err)
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// ClassifyMood asks for a single closed-set label. The raw answer is
// normalized; callers decide whether an error collapses to neutral.
func (s *Service) ClassifyMood(ctx context.Context, entry string) (domain.Mood, error) {
	raw, err := s.complete(ctx, moodPrompt(entry))
	if err != nil {
		s.logger.Warn("mood classification failed", "error", err)
		return domain.MoodNeutral, err
	}

	mood := domain.NormalizeMood(raw)
	s.logger.Debug("mood classified", "mood", string(mood))
	return mood, nil
}

// Summarize condenses the given entries. Empty input short-circuits to the
// sentinel without touching the provider.
func (s *Service) Summarize(ctx context.Context, entries []string) (string, error) {
	return s.analyze(ctx, "summary", summaryTemplate, SentinelNoSummary, entries)
}

func (s *Service) Motivation(ctx context.Context, entries []string) (string, error) {
	return s.analyze(ctx, "motivation", motivationTemplate, SentinelNoMotivation, entries)
}

func (s *Service) Improvements(ctx context.Context, entries []string) (string, error) {
	return s.analyze(ctx, "improvements", improvementsTemplate, SentinelNoImprovements, entries)
}

func (s *Service) Insights(ctx context.Context, entries []string) (string, error) {
	return s.analyze(ctx, "insights", insightsTemplate, SentinelNoInsights, entries)
}

func (s *Service) analyze(ctx context.Context, operation, template, sentinel string, entries []string) (string, error) {
	if len(entries) == 0 {
		return sentinel, nil
	}

	result, err := s.complete(ctx, analysisPrompt(template, entries))
	if err != nil {
		s.logger.Error("analysis generation failed", "operation", operation, "error", err)
		return "", err
	}

	s.logger.Info("analysis generated", "operation", operation, "entries", len(entries))
	return strings.TrimSpace(result), nil
}
