package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/config"
	"github.com/yourusername/biosmaris-storefront/internal/delivery/telegram"
	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
	"github.com/yourusername/biosmaris-storefront/internal/infrastructure/backend"
	"github.com/yourusername/biosmaris-storefront/internal/infrastructure/gemini"
	"github.com/yourusername/biosmaris-storefront/internal/infrastructure/parser"
	"github.com/yourusername/biosmaris-storefront/internal/infrastructure/storage"
	"github.com/yourusername/biosmaris-storefront/internal/logger"
	"github.com/yourusername/biosmaris-storefront/internal/scheduler"
	"github.com/yourusername/biosmaris-storefront/internal/usecase"
)

const revalidateTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	syncLogger, err := logger.Init(logger.Options{Mode: cfg.LogMode, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer syncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	if err != nil {
		return err
	}
	productRepo := backend.NewProductRepository(client)
	contactRepo := backend.NewContactRepository(client)
	adminRepo := backend.NewAdminRepository(client)

	store, err := storage.OpenSessionStore(cfg.SessionStore, cfg.SessionDBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			zap.S().Errorf("close session store: %v", err)
		}
	}()

	// each Telegram user gets an isolated view of the shared store
	sessions := usecase.NewSessionPool(adminRepo, func(operatorID int64) repository.SessionStore {
		return storage.Scoped(store, storage.OperatorPrefix(operatorID))
	})

	// sessions persisted by a previous run are revalidated without waiting
	// for their operator to come back
	operators, err := storage.OperatorIDs(ctx, store)
	if err != nil {
		return err
	}
	if active := sessions.Preload(ctx, operators); active > 0 {
		zap.S().Infof("restored %d admin session(s)", active)
	}

	productUseCase := usecase.NewProductUseCase(productRepo)
	catalogUseCase := usecase.NewCatalogUseCase(productUseCase, parser.NewExcelParser())
	contactUseCase := usecase.NewContactUseCase(contactRepo, adminRepo)
	inboxUseCase := usecase.NewInboxUseCase(contactRepo)

	var aiRepo repository.AIRepository
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return errors.Wrap(err, "gemini")
		}
		defer geminiClient.Close()
		aiRepo = geminiClient
	} else {
		zap.S().Info("GEMINI_API_KEY not set, assistant disabled")
	}
	assistantUseCase := usecase.NewAssistantUseCase(aiRepo, catalogUseCase)

	jobs := scheduler.New()
	if err := jobs.AddRevalidation(cfg.RevalidateSchedule, sessions, revalidateTimeout); err != nil {
		return err
	}
	jobs.Start()
	defer jobs.Stop()

	handler, err := telegram.NewBotHandler(
		cfg.TelegramToken,
		cfg.AdminChatID,
		catalogUseCase,
		productUseCase,
		contactUseCase,
		inboxUseCase,
		assistantUseCase,
		sessions,
	)
	if err != nil {
		return err
	}

	zap.S().Infof("storefront started, backend %s, session store %s", cfg.BackendURL, cfg.SessionStore)

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	zap.S().Info("storefront stopped")
	return nil
}
