package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/usecase"
)

const (
	readPrefix   = "msgread:"
	deletePrefix = "msgdel:"
)

func (h *BotHandler) handleMessagesCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if _, ok := h.adminSession(ctx, message.From.ID, chatID); !ok {
		return
	}

	if !h.inboxUseCase.Refresh(ctx) {
		h.sendMessage(chatID, "⚠️ Boîte de réception non actualisée, affichage de la dernière version.")
	}

	messages := h.inboxUseCase.Messages()
	if len(messages) == 0 {
		h.sendMessage(chatID, "📭 Aucun message.")
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("📬 %d messages, %d non lus", len(messages), h.inboxUseCase.UnreadCount()))
	for _, m := range messages {
		h.sendContactMessage(chatID, m)
	}
}

func (h *BotHandler) sendContactMessage(chatID int64, m entity.ContactMessage) {
	buttons := []tgbotapi.InlineKeyboardButton{}
	if !m.Read {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData("✅ Lu", readPrefix+m.ID))
	}
	buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData("🗑 Supprimer", deletePrefix+m.ID))

	markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
	if _, err := h.sendWithMarkup(chatID, formatContactMessage(m), markup); err != nil {
		h.sendMessage(chatID, formatContactMessage(m))
	}
}

func (h *BotHandler) handleMarkReadCommand(ctx context.Context, message *tgbotapi.Message, id string) {
	if id == "" {
		h.sendMessage(message.Chat.ID, "Usage : /lu <id>")
		return
	}
	h.markRead(ctx, message.From.ID, message.Chat.ID, id)
}

func (h *BotHandler) handleDeleteMessageCommand(ctx context.Context, message *tgbotapi.Message, id string) {
	if id == "" {
		h.sendMessage(message.Chat.ID, "Usage : /supprimermsg <id>")
		return
	}
	h.deleteMessage(ctx, message.From.ID, message.Chat.ID, id)
}

func (h *BotHandler) markRead(ctx context.Context, userID, chatID int64, id string) {
	if _, ok := h.adminSession(ctx, userID, chatID); !ok {
		return
	}

	if err := h.inboxUseCase.MarkRead(ctx, id); err != nil {
		if errors.Is(err, usecase.ErrMessageNotFound) {
			h.sendMessage(chatID, "Message introuvable, actualisez avec /messages.")
			return
		}
		zap.S().Errorf("mark message %s read: %v", id, err)
		h.sendMessage(chatID, "❌ Impossible de marquer le message comme lu.")
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("✅ Message marqué comme lu. %d non lus.", h.inboxUseCase.UnreadCount()))
}

func (h *BotHandler) deleteMessage(ctx context.Context, userID, chatID int64, id string) {
	if _, ok := h.adminSession(ctx, userID, chatID); !ok {
		return
	}

	confirm := func(ctx context.Context, m entity.ContactMessage) bool {
		return h.askConfirmation(ctx, chatID, fmt.Sprintf("🗑 Supprimer le message de %s (%s) ?", m.Name, m.Subject))
	}

	removed, err := h.inboxUseCase.Delete(ctx, id, confirm)
	switch {
	case errors.Is(err, usecase.ErrMessageNotFound):
		h.sendMessage(chatID, "Message introuvable, actualisez avec /messages.")
	case err != nil:
		zap.S().Errorf("delete message %s: %v", id, err)
		h.sendMessage(chatID, "❌ Suppression impossible.")
	case !removed:
		h.sendMessage(chatID, "Suppression annulée.")
	default:
		h.sendMessage(chatID, "✅ Message supprimé.")
	}
}
