package repository

import "context"

// AIRepository answers free-text questions.
type AIRepository interface {
	// GenerateResponse answers the prompt
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}
