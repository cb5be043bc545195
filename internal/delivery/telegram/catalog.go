package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/domain/catalog"
	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/usecase"
)

const (
	categoryPrefix = "cat:"
	suggestLimit   = 5
)

func (h *BotHandler) handleProductsCommand(ctx context.Context, chatID int64) {
	products := h.catalogUseCase.Refresh(ctx)
	if len(products) == 0 {
		h.sendMessage(chatID, "Aucun produit disponible pour le moment.")
		return
	}
	h.sendMessage(chatID, h.catalogUseCase.Text())
}

func (h *BotHandler) handleSearchCommand(ctx context.Context, chatID int64, text string) {
	if text == "" {
		h.sendMessage(chatID, "Usage : /recherche <texte>")
		return
	}
	h.searchAndReply(ctx, chatID, catalog.Query{Text: text}, true)
}

func (h *BotHandler) handleCategoriesCommand(ctx context.Context, chatID int64) {
	h.ensureCatalog(ctx)

	categories := h.catalogUseCase.Categories()
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range categories {
		label := c
		if c == catalog.AllCategories {
			label = "Toutes"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, categoryPrefix+categoryToken(c)),
		))
	}

	if _, err := h.sendWithMarkup(chatID, "📂 Choisissez une catégorie :", tgbotapi.NewInlineKeyboardMarkup(rows...)); err != nil {
		h.sendMessage(chatID, strings.Join(categories, "\n"))
	}
}

func (h *BotHandler) handleCategoryCallback(ctx context.Context, chatID int64, token string) {
	category, ok := findCategory(h.catalogUseCase.Categories(), token)
	if !ok {
		h.sendMessage(chatID, "Catégorie introuvable, relancez /categories.")
		return
	}
	h.handleCategoryCommand(ctx, chatID, category)
}

// categoryToken names a category in callback data. It depends only on the
// category itself, so a button stays valid when the list is refreshed or
// reordered, and it fits Telegram's 64 byte callback limit.
func categoryToken(category string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(category)).String()
}

func findCategory(categories []string, token string) (string, bool) {
	for _, c := range categories {
		if categoryToken(c) == token {
			return c, true
		}
	}
	return "", false
}

func (h *BotHandler) handleCategoryCommand(ctx context.Context, chatID int64, category string) {
	if category == "" {
		h.handleCategoriesCommand(ctx, chatID)
		return
	}
	// the button shows the display name; the filter wants the raw value
	if category == catalog.Uncategorized {
		h.ensureCatalog(ctx)
		var blank []string
		for _, p := range h.catalogUseCase.Products() {
			if strings.TrimSpace(p.Category) == "" {
				blank = append(blank, formatProductLine(p))
			}
		}
		if len(blank) == 0 {
			h.sendMessage(chatID, "Aucun produit sans catégorie.")
			return
		}
		h.sendMessage(chatID, "📂 "+catalog.Uncategorized+"\n\n"+strings.Join(blank, "\n"))
		return
	}
	h.searchAndReply(ctx, chatID, catalog.Query{Category: category}, false)
}

func (h *BotHandler) handleQRCommand(ctx context.Context, chatID int64, code string) {
	if strings.TrimSpace(code) == "" {
		h.sendMessage(chatID, "Usage : /qr <code>")
		return
	}
	h.ensureCatalog(ctx)

	found := h.catalogUseCase.FindByQRCode(code)
	switch len(found) {
	case 0:
		h.sendMessage(chatID, fmt.Sprintf("Aucun produit pour le QR code %s.", code))
	case 1:
		h.sendMessage(chatID, formatProduct(found[0]))
	default:
		h.sendMessage(chatID, formatProductList(fmt.Sprintf("🔖 %d produits pour le QR code %s :", len(found), code), found))
	}
}

func (h *BotHandler) handleProductCommand(ctx context.Context, chatID int64, id string) {
	if id == "" {
		h.sendMessage(chatID, "Usage : /produit <id>")
		return
	}
	product := h.productUseCase.Get(ctx, id)
	if product == nil {
		h.sendMessage(chatID, "Produit introuvable.")
		return
	}
	h.sendMessage(chatID, formatProduct(*product))
}

// handleFreeText treats any plain message as a catalog search, then falls
// back to the assistant or to fuzzy suggestions.
func (h *BotHandler) handleFreeText(ctx context.Context, chatID int64, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	h.ensureCatalog(ctx)

	if found := h.catalogUseCase.Search(catalog.Query{Text: text}); len(found) > 0 {
		h.replyWithProducts(chatID, found)
		return
	}

	if h.assistantUseCase.Enabled() {
		answer, err := h.assistantUseCase.Ask(ctx, text)
		if err == nil && strings.TrimSpace(answer) != "" {
			h.sendMessage(chatID, answer)
			return
		}
		if err != nil && !errors.Is(err, usecase.ErrAssistantDisabled) {
			zap.S().Warnf("assistant failed: %v", err)
		}
	}

	h.replySuggestions(chatID, text)
}

func (h *BotHandler) searchAndReply(ctx context.Context, chatID int64, q catalog.Query, suggest bool) {
	h.ensureCatalog(ctx)

	found := h.catalogUseCase.Search(q)
	if len(found) > 0 {
		h.replyWithProducts(chatID, found)
		return
	}
	if suggest {
		h.replySuggestions(chatID, q.Text)
		return
	}
	h.sendMessage(chatID, "Aucun produit trouvé.")
}

func (h *BotHandler) replyWithProducts(chatID int64, products []entity.Product) {
	if len(products) == 1 {
		h.sendMessage(chatID, formatProduct(products[0]))
		return
	}
	h.sendMessage(chatID, formatProductList(fmt.Sprintf("🔎 %d produits trouvés :", len(products)), products))
}

func (h *BotHandler) replySuggestions(chatID int64, text string) {
	suggestions := h.catalogUseCase.Suggest(text, suggestLimit)
	if len(suggestions) == 0 {
		h.sendMessage(chatID, "Aucun produit trouvé. Essayez /categories ou /produits.")
		return
	}
	h.sendMessage(chatID, formatProductList("Aucun résultat exact. Vouliez-vous dire :", suggestions))
}

// ensureCatalog loads the list once if nothing was fetched yet.
func (h *BotHandler) ensureCatalog(ctx context.Context) {
	if len(h.catalogUseCase.Products()) == 0 {
		h.catalogUseCase.Refresh(ctx)
	}
}
