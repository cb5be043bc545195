package telegram

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/usecase"
)

// maxMessageLen is Telegram's limit for one text message.
const maxMessageLen = 4096

// BotHandler drives the storefront use cases from Telegram updates.
type BotHandler struct {
	bot         *tgbotapi.BotAPI
	adminChatID int64
	files       *http.Client

	catalogUseCase   usecase.CatalogUseCase
	productUseCase   usecase.ProductUseCase
	contactUseCase   usecase.ContactUseCase
	inboxUseCase     usecase.InboxUseCase
	assistantUseCase usecase.AssistantUseCase
	sessions         *usecase.SessionPool

	// users who were asked for the admin password
	awaitingPassword map[int64]bool
	mu               sync.RWMutex

	contactMu       sync.RWMutex
	contactSessions map[int64]*contactSession

	formMu       sync.RWMutex
	productForms map[int64]productForm

	confirmMu sync.Mutex
	confirms  map[string]chan bool
}

// NewBotHandler connects to the Bot API.
func NewBotHandler(
	token string,
	adminChatID int64,
	catalogUseCase usecase.CatalogUseCase,
	productUseCase usecase.ProductUseCase,
	contactUseCase usecase.ContactUseCase,
	inboxUseCase usecase.InboxUseCase,
	assistantUseCase usecase.AssistantUseCase,
	sessions *usecase.SessionPool,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "create bot")
	}

	return &BotHandler{
		bot:              bot,
		adminChatID:      adminChatID,
		files:            &http.Client{Timeout: time.Minute},
		catalogUseCase:   catalogUseCase,
		productUseCase:   productUseCase,
		contactUseCase:   contactUseCase,
		inboxUseCase:     inboxUseCase,
		assistantUseCase: assistantUseCase,
		sessions:         sessions,
		awaitingPassword: make(map[int64]bool),
		contactSessions:  make(map[int64]*contactSession),
		productForms:     make(map[int64]productForm),
		confirms:         make(map[string]chan bool),
	}, nil
}

// Start polls for updates until ctx ends.
func (h *BotHandler) Start(ctx context.Context) error {
	zap.S().Infof("bot @%s started", h.bot.Self.UserName)

	h.catalogUseCase.Refresh(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			zap.S().Info("bot stopping")
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}

			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	userID := message.From.ID

	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if h.isAwaitingPassword(userID) && !message.IsCommand() {
		h.handlePasswordInput(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if message.Text != "" {
		h.handleTextMessage(ctx, message)
	}
}

func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start":
		h.sendMessage(chatID, welcomeMessage)
	case "help":
		h.sendMessage(chatID, helpMessage)
	case "annuler", "cancel":
		h.handleCancelCommand(message)

	// catalog
	case "produits", "products":
		h.handleProductsCommand(ctx, chatID)
	case "recherche", "search":
		h.handleSearchCommand(ctx, chatID, args)
	case "categories":
		h.handleCategoriesCommand(ctx, chatID)
	case "categorie", "category":
		h.handleCategoryCommand(ctx, chatID, args)
	case "qr":
		h.handleQRCommand(ctx, chatID, args)
	case "produit", "product":
		h.handleProductCommand(ctx, chatID, args)

	// contact
	case "contact":
		h.handleContactCommand(ctx, message)
	case "coordonnees":
		h.handleContactInfoCommand(ctx, chatID)

	// admin
	case "admin":
		h.handleAdminCommand(ctx, message)
	case "logout":
		h.handleLogoutCommand(ctx, message)
	case "profil", "profile":
		h.handleProfileCommand(ctx, message, args)
	case "ajouter", "addproduct":
		h.handleProductFormCommand(ctx, message, "")
	case "modifier", "editproduct":
		h.handleProductFormCommand(ctx, message, args)
	case "supprimer", "delproduct":
		h.handleDeleteProductCommand(ctx, message, args)
	case "export":
		h.handleExportCommand(ctx, message)
	case "messages":
		h.handleMessagesCommand(ctx, message)
	case "lu", "read":
		h.handleMarkReadCommand(ctx, message, args)
	case "supprimermsg", "delmsg":
		h.handleDeleteMessageCommand(ctx, message, args)

	default:
		h.sendMessage(chatID, "Commande inconnue. /help pour l'aide.")
	}
}

func (h *BotHandler) handleTextMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	if h.hasContactSession(userID) {
		h.handleContactFlow(ctx, message)
		return
	}

	if form, ok := h.productForm(userID); ok {
		h.handleProductFormInput(ctx, message, form)
		return
	}

	h.handleFreeText(ctx, message.Chat.ID, message.Text)
}

func (h *BotHandler) handleCancelCommand(message *tgbotapi.Message) {
	userID := message.From.ID
	h.setAwaitingPassword(userID, false)
	h.clearContactSession(userID)
	h.clearProductForm(userID)
	h.sendMessage(message.Chat.ID, "Opération annulée.")
}

func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	data := cq.Data
	chatID := cq.Message.Chat.ID

	// stop the button spinner
	if _, err := h.bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		zap.S().Warnf("callback answer failed: %v", err)
	}

	switch {
	case strings.HasPrefix(data, confirmYesPrefix), strings.HasPrefix(data, confirmNoPrefix):
		h.handleConfirmCallback(chatID, cq.Message.MessageID, data)
	case strings.HasPrefix(data, categoryPrefix):
		h.handleCategoryCallback(ctx, chatID, strings.TrimPrefix(data, categoryPrefix))
	case strings.HasPrefix(data, readPrefix):
		h.markRead(ctx, cq.From.ID, chatID, strings.TrimPrefix(data, readPrefix))
	case strings.HasPrefix(data, deletePrefix):
		h.deleteMessage(ctx, cq.From.ID, chatID, strings.TrimPrefix(data, deletePrefix))
	}
}

// adminSession returns the session of userID when it is logged in, and tells
// the user otherwise.
func (h *BotHandler) adminSession(ctx context.Context, userID, chatID int64) (usecase.SessionUseCase, bool) {
	session, err := h.sessions.Get(ctx, userID)
	if err != nil {
		zap.S().Errorf("load admin session for %d: %v", userID, err)
		h.sendMessage(chatID, "❌ Impossible de charger la session admin.")
		return nil, false
	}
	if !session.IsAuthenticated() {
		h.sendMessage(chatID, "🔐 Réservé à l'administrateur. Connectez-vous avec /admin.")
		return nil, false
	}
	return session, true
}

func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if _, ok := h.adminSession(ctx, message.From.ID, chatID); !ok {
		return
	}

	doc := message.Document
	if doc.FileSize > 5*1024*1024 {
		h.sendMessage(chatID, "❌ Le fichier ne doit pas dépasser 5 Mo.")
		return
	}
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		h.sendMessage(chatID, "❌ Seuls les fichiers Excel (.xlsx) sont acceptés.")
		return
	}

	h.sendMessage(chatID, "⏳ Import du catalogue en cours...")

	data, err := h.downloadFile(ctx, doc.FileID)
	if err != nil {
		zap.S().Errorf("download %s: %v", doc.FileName, err)
		h.sendMessage(chatID, "❌ Impossible de télécharger le fichier.")
		return
	}

	created, err := h.catalogUseCase.Import(ctx, data, doc.FileName)
	if err != nil {
		zap.S().Errorf("import %s: %v", doc.FileName, err)
		h.sendMessage(chatID, "❌ Import impossible : "+err.Error())
		return
	}

	h.sendMessage(chatID, importSummary(created, len(h.catalogUseCase.Products()), doc.FileName))
}

func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(h.bot.Token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.files.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("file download returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.awaitingPassword[userID]
}

func (h *BotHandler) setAwaitingPassword(userID int64, awaiting bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if awaiting {
		h.awaitingPassword[userID] = true
	} else {
		delete(h.awaitingPassword, userID)
	}
}

// sendMessage sends plain text, split into several messages when needed.
func (h *BotHandler) sendMessage(chatID int64, text string) {
	for _, part := range splitMessage(text, maxMessageLen) {
		if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			zap.S().Errorf("send message to %d: %v", chatID, err)
		}
	}
}

func (h *BotHandler) sendWithMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) (*tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	sent, err := h.bot.Send(msg)
	if err != nil {
		zap.S().Errorf("send message to %d: %v", chatID, err)
		return nil, err
	}
	return &sent, nil
}

// notifyAdmin forwards text to the configured admin chat, if any.
func (h *BotHandler) notifyAdmin(text string) {
	if h.adminChatID == 0 {
		return
	}
	h.sendMessage(h.adminChatID, text)
}
