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

// productForm is a pending create (editingID empty) or edit.
type productForm struct {
	editingID string
	base      entity.ProductInput
}

func (h *BotHandler) handleAdminCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	session, err := h.sessions.Get(ctx, userID)
	if err != nil {
		zap.S().Errorf("load admin session for %d: %v", userID, err)
		h.sendMessage(chatID, "❌ Impossible de charger la session admin.")
		return
	}

	if session.IsAuthenticated() {
		h.sendMessage(chatID, "✅ Vous êtes déjà connecté.\n\n"+adminMenu(session.Session()))
		return
	}

	h.setAwaitingPassword(userID, true)
	h.sendMessage(chatID, "🔐 Entrez le mot de passe administrateur :")
}

func (h *BotHandler) handlePasswordInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID
	password := strings.TrimSpace(message.Text)

	h.setAwaitingPassword(userID, false)

	// keep the password out of the chat history
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, message.MessageID)); err != nil {
		zap.S().Debugf("delete password message: %v", err)
	}

	session, err := h.sessions.Get(ctx, userID)
	if err != nil {
		zap.S().Errorf("load admin session for %d: %v", userID, err)
		h.sendMessage(chatID, "❌ Impossible de charger la session admin.")
		return
	}

	if err := session.Login(ctx, password); err != nil {
		var authErr *usecase.AuthError
		if errors.As(err, &authErr) {
			zap.S().Infof("admin login refused for user %d", userID)
			h.sendMessage(chatID, "❌ "+authErr.Message+"\n\nRéessayez avec /admin.")
			return
		}
		zap.S().Errorf("admin login for user %d: %v", userID, err)
		h.sendMessage(chatID, "❌ Serveur injoignable, réessayez plus tard.")
		return
	}

	zap.S().Infof("admin logged in: user %d", userID)
	h.sendMessage(chatID, "✅ Connexion réussie.\n\n"+adminMenu(session.Session()))
}

func (h *BotHandler) handleLogoutCommand(ctx context.Context, message *tgbotapi.Message) {
	session, ok := h.adminSession(ctx, message.From.ID, message.Chat.ID)
	if !ok {
		return
	}
	if !session.Logout(ctx) {
		h.sendMessage(message.Chat.ID, "❌ La déconnexion a échoué, vous êtes toujours connecté.")
		return
	}
	h.clearProductForm(message.From.ID)
	h.sendMessage(message.Chat.ID, "👋 Déconnecté.")
}

func (h *BotHandler) handleProfileCommand(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	session, ok := h.adminSession(ctx, message.From.ID, chatID)
	if !ok {
		return
	}

	fields := strings.Fields(args)
	if len(fields) == 0 {
		h.sendMessage(chatID, adminMenu(session.Session()))
		return
	}
	if len(fields) != 2 {
		h.sendMessage(chatID, "Usage : /profil <email> <téléphone>")
		return
	}

	if !session.UpdateProfile(ctx, fields[0], fields[1]) {
		h.sendMessage(chatID, "❌ Mise à jour du profil impossible.")
		return
	}
	h.sendMessage(chatID, "✅ Profil mis à jour.\n\n"+adminMenu(session.Session()))
}

// handleProductFormCommand opens the create form, or the edit form of id.
func (h *BotHandler) handleProductFormCommand(ctx context.Context, message *tgbotapi.Message, id string) {
	userID := message.From.ID
	chatID := message.Chat.ID
	if _, ok := h.adminSession(ctx, userID, chatID); !ok {
		return
	}

	form := productForm{}
	title := "➕ Nouveau produit"
	if id != "" {
		product := h.productUseCase.Get(ctx, id)
		if product == nil {
			h.sendMessage(chatID, "Produit introuvable.")
			return
		}
		form = productForm{editingID: product.ID, base: product.Input()}
		title = "✏️ Modification de " + product.Name
	}

	h.clearContactSession(userID)
	h.formMu.Lock()
	h.productForms[userID] = form
	h.formMu.Unlock()

	h.sendMessage(chatID, title+"\n\nRenvoyez le formulaire complété (listes séparées par \";\"), ou /annuler :")
	h.sendMessage(chatID, productFormTemplate(form.base))
}

func (h *BotHandler) handleProductFormInput(ctx context.Context, message *tgbotapi.Message, form productForm) {
	userID := message.From.ID
	chatID := message.Chat.ID

	// the session may have expired while the form was open
	if _, ok := h.adminSession(ctx, userID, chatID); !ok {
		h.clearProductForm(userID)
		return
	}

	input, err := parseProductForm(message.Text, form.base)
	if err != nil {
		h.sendMessage(chatID, "❌ "+err.Error()+"\nCorrigez et renvoyez le formulaire, ou /annuler.")
		return
	}
	h.clearProductForm(userID)

	before := len(h.catalogUseCase.Products())
	products := h.catalogUseCase.Save(ctx, form.editingID, input)

	if form.editingID != "" {
		h.sendMessage(chatID, fmt.Sprintf("💾 Modification envoyée. %d produits au catalogue.", len(products)))
		return
	}
	if len(products) > before {
		h.sendMessage(chatID, fmt.Sprintf("✅ Produit %q ajouté.", input.Name))
		return
	}
	h.sendMessage(chatID, "⚠️ Le produit n'apparaît pas dans le catalogue, l'ajout a peut-être échoué.")
}

func (h *BotHandler) handleDeleteProductCommand(ctx context.Context, message *tgbotapi.Message, code string) {
	chatID := message.Chat.ID
	if _, ok := h.adminSession(ctx, message.From.ID, chatID); !ok {
		return
	}
	if code == "" {
		h.sendMessage(chatID, "Usage : /supprimer <qr>")
		return
	}

	h.ensureCatalog(ctx)
	label := "QR " + code
	for _, p := range h.catalogUseCase.Products() {
		if p.QRCode.String() == code {
			label = fmt.Sprintf("%s (QR %s)", p.Name, code)
			break
		}
	}

	if !h.askConfirmation(ctx, chatID, "🗑 Supprimer "+label+" ?") {
		h.sendMessage(chatID, "Suppression annulée.")
		return
	}

	products := h.catalogUseCase.Delete(ctx, entity.QRCode(code))
	for _, p := range products {
		if p.QRCode.String() == code {
			h.sendMessage(chatID, "⚠️ Le produit est toujours présent, la suppression a peut-être échoué.")
			return
		}
	}
	h.sendMessage(chatID, fmt.Sprintf("✅ Supprimé. %d produits restants.", len(products)))
}

func (h *BotHandler) handleExportCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if _, ok := h.adminSession(ctx, message.From.ID, chatID); !ok {
		return
	}

	data, err := h.catalogUseCase.Export(ctx)
	if err != nil {
		zap.S().Errorf("export catalog: %v", err)
		h.sendMessage(chatID, "❌ Export impossible.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: "catalogue.xlsx", Bytes: data})
	doc.Caption = fmt.Sprintf("📦 %d produits", len(h.catalogUseCase.Products()))
	if _, err := h.bot.Send(doc); err != nil {
		zap.S().Errorf("send export to %d: %v", chatID, err)
		h.sendMessage(chatID, "❌ Envoi du fichier impossible.")
	}
}

func (h *BotHandler) productForm(userID int64) (productForm, bool) {
	h.formMu.RLock()
	defer h.formMu.RUnlock()
	form, ok := h.productForms[userID]
	return form, ok
}

func (h *BotHandler) clearProductForm(userID int64) {
	h.formMu.Lock()
	defer h.formMu.Unlock()
	delete(h.productForms, userID)
}

func adminMenu(session entity.AdminSession) string {
	var b strings.Builder
	b.WriteString("👤 Administration\n")
	if p := session.Profile; p != nil {
		fmt.Fprintf(&b, "📧 %s\n📞 %s\n", p.Email, p.Phone)
	}
	b.WriteString("\n/messages /ajouter /modifier /supprimer /export /profil /logout")
	return b.String()
}
