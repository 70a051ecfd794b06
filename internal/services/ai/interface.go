// File: internal/services/ai/interface.go
package ai

import "context"

// CompletionProvider is the low-level boundary to the external
// text-generation API.
type CompletionProvider interface {
	GetCompletion(ctx context.Context, model, prompt string) (string, error)
}
