package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

// ErrAssistantDisabled is returned when no AI backend is configured.
var ErrAssistantDisabled = errors.New("assistant is not configured")

const assistantTimeout = 20 * time.Second

// AssistantUseCase answers visitor questions about the catalog.
type AssistantUseCase interface {
	Ask(ctx context.Context, question string) (string, error)
	Enabled() bool
}

type assistantUseCase struct {
	aiRepo  repository.AIRepository
	catalog CatalogUseCase
}

// NewAssistantUseCase creates the assistant. aiRepo may be nil, which
// disables it.
func NewAssistantUseCase(aiRepo repository.AIRepository, catalog CatalogUseCase) AssistantUseCase {
	return &assistantUseCase{
		aiRepo:  aiRepo,
		catalog: catalog,
	}
}

func (u *assistantUseCase) Enabled() bool {
	return u.aiRepo != nil
}

func (u *assistantUseCase) Ask(ctx context.Context, question string) (string, error) {
	if u.aiRepo == nil {
		return "", ErrAssistantDisabled
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.New("empty question")
	}

	ctx, cancel := context.WithTimeout(ctx, assistantTimeout)
	defer cancel()

	if len(u.catalog.Products()) == 0 {
		u.catalog.Refresh(ctx)
	}

	response, err := u.aiRepo.GenerateResponse(ctx, buildPrompt(question, u.catalog.Text()))
	if err != nil {
		return "", errors.Wrap(err, "generate response")
	}
	zap.L().Debug("assistant answered", zap.Int("question_len", len(question)), zap.Int("answer_len", len(response)))
	return response, nil
}

func buildPrompt(question, catalogText string) string {
	if catalogText == "" {
		catalogText = "(catalogue indisponible pour le moment)"
	}
	return fmt.Sprintf(`Question du client : %s

━━━━━━━━━━━━━━━━━━━━
CATALOGUE BIOS MARIS :
%s
━━━━━━━━━━━━━━━━━━━━

Réponds au client en t'appuyant uniquement sur ce catalogue.`, question, catalogText)
}
