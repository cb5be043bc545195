package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/usecase"
)

type contactStep int

const (
	stepName contactStep = iota
	stepEmail
	stepPhone
	stepSubject
	stepMessage
)

var contactPrompts = map[contactStep]string{
	stepName:    "Votre nom ?",
	stepEmail:   "Votre adresse email ?",
	stepPhone:   "Votre téléphone ? (\"-\" pour passer)",
	stepSubject: "Le sujet de votre message ?",
	stepMessage: "Votre message ?",
}

var fieldLabels = map[string]string{
	"name":    "nom",
	"email":   "email",
	"subject": "sujet",
	"message": "message",
}

type contactSession struct {
	step contactStep
	form entity.ContactForm
}

// httpStatusError is implemented by backend rejections.
type httpStatusError interface {
	HTTPStatus() int
}

func (h *BotHandler) handleContactCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	h.clearProductForm(userID)

	h.contactMu.Lock()
	h.contactSessions[userID] = &contactSession{step: stepName}
	h.contactMu.Unlock()

	h.sendMessage(message.Chat.ID, "✉️ Écrivez-nous ! /annuler pour abandonner.\n\n"+contactPrompts[stepName])
}

func (h *BotHandler) handleContactInfoCommand(ctx context.Context, chatID int64) {
	info := h.contactUseCase.ContactInfo(ctx)
	if info == nil || (info.Email == "" && info.Phone == "") {
		h.sendMessage(chatID, "Coordonnées indisponibles pour le moment. Utilisez /contact.")
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("📧 %s\n📞 %s", info.Email, info.Phone))
}

// handleContactFlow stores one answer and asks the next question.
func (h *BotHandler) handleContactFlow(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	h.contactMu.Lock()
	session, ok := h.contactSessions[userID]
	if !ok {
		h.contactMu.Unlock()
		return
	}
	switch session.step {
	case stepName:
		session.form.Name = text
	case stepEmail:
		session.form.Email = text
	case stepPhone:
		if text != "-" {
			session.form.Phone = text
		}
	case stepSubject:
		session.form.Subject = text
	case stepMessage:
		session.form.Message = text
	}
	session.step++
	done := session.step > stepMessage
	form := session.form
	next := session.step
	if done {
		delete(h.contactSessions, userID)
	}
	h.contactMu.Unlock()

	if !done {
		h.sendMessage(chatID, contactPrompts[next])
		return
	}

	h.submitContact(ctx, chatID, form)
}

func (h *BotHandler) submitContact(ctx context.Context, chatID int64, form entity.ContactForm) {
	err := h.contactUseCase.Submit(ctx, form)
	if err == nil {
		h.sendMessage(chatID, "✅ Merci ! Votre message a bien été envoyé.")
		h.notifyAdmin(fmt.Sprintf("📬 Nouveau message de %s <%s>\nSujet : %s\n\n%s", form.Name, form.Email, form.Subject, form.Message))
		return
	}

	var validation *usecase.ValidationError
	if errors.As(err, &validation) {
		fields := make([]string, 0, len(validation.Fields))
		for _, f := range validation.Fields {
			if label, ok := fieldLabels[f]; ok {
				f = label
			}
			fields = append(fields, f)
		}
		h.sendMessage(chatID, "❌ Champs invalides : "+strings.Join(fields, ", ")+".\nRecommencez avec /contact.")
		return
	}

	var rejected httpStatusError
	if errors.As(err, &rejected) {
		zap.S().Warnf("contact rejected with status %d: %v", rejected.HTTPStatus(), err)
		h.sendMessage(chatID, "❌ Le message a été refusé par le serveur. Réessayez plus tard.")
		return
	}

	zap.S().Errorf("contact submission: %v", err)
	h.sendMessage(chatID, "❌ Envoi impossible, vérifiez votre connexion et réessayez.")
}

func (h *BotHandler) hasContactSession(userID int64) bool {
	h.contactMu.RLock()
	defer h.contactMu.RUnlock()
	_, ok := h.contactSessions[userID]
	return ok
}

func (h *BotHandler) clearContactSession(userID int64) {
	h.contactMu.Lock()
	defer h.contactMu.Unlock()
	delete(h.contactSessions, userID)
}
