package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	confirmYesPrefix = "confirm:yes:"
	confirmNoPrefix  = "confirm:no:"
	confirmTimeout   = 2 * time.Minute
)

// askConfirmation shows yes/no buttons and blocks until one is pressed.
// A timeout or a cancelled ctx counts as no.
func (h *BotHandler) askConfirmation(ctx context.Context, chatID int64, question string) bool {
	token := uuid.NewString()
	answer := make(chan bool, 1)

	h.confirmMu.Lock()
	h.confirms[token] = answer
	h.confirmMu.Unlock()

	defer func() {
		h.confirmMu.Lock()
		delete(h.confirms, token)
		h.confirmMu.Unlock()
	}()

	markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Oui", confirmYesPrefix+token),
		tgbotapi.NewInlineKeyboardButtonData("Non", confirmNoPrefix+token),
	))
	if _, err := h.sendWithMarkup(chatID, question, markup); err != nil {
		return false
	}

	timer := time.NewTimer(confirmTimeout)
	defer timer.Stop()

	select {
	case ok := <-answer:
		return ok
	case <-timer.C:
		h.sendMessage(chatID, "⌛ Pas de réponse, opération annulée.")
		return false
	case <-ctx.Done():
		return false
	}
}

func (h *BotHandler) handleConfirmCallback(chatID int64, messageID int, data string) {
	yes := strings.HasPrefix(data, confirmYesPrefix)
	token := strings.TrimPrefix(strings.TrimPrefix(data, confirmYesPrefix), confirmNoPrefix)

	if !h.resolveConfirmation(token, yes) {
		h.sendMessage(chatID, "Cette confirmation a expiré.")
		return
	}

	// drop the buttons so the question cannot be answered twice
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	if _, err := h.bot.Request(edit); err != nil {
		zap.S().Debugf("remove confirmation buttons: %v", err)
	}
}

// resolveConfirmation delivers the answer for token. It reports false when
// nobody is waiting for it.
func (h *BotHandler) resolveConfirmation(token string, yes bool) bool {
	h.confirmMu.Lock()
	answer, ok := h.confirms[token]
	if ok {
		delete(h.confirms, token)
	}
	h.confirmMu.Unlock()

	if !ok {
		return false
	}
	answer <- yes
	return true
}
