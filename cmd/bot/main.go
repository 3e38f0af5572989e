package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vpetrenko/smena_bot/internal/app"
	"github.com/vpetrenko/smena_bot/internal/config"
	"github.com/vpetrenko/smena_bot/internal/controller"
	"github.com/vpetrenko/smena_bot/internal/controller/handlers"
	"github.com/vpetrenko/smena_bot/internal/repository"
	"github.com/vpetrenko/smena_bot/internal/repository/sheetstore"
	"github.com/vpetrenko/smena_bot/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	shiftRepo := repository.NewShiftRepository(pool)

	// Postgres авторитетен; Google-таблица, если настроена, получает
	// best-effort копии записей
	var store service.ShiftStore = shiftRepo
	if cfg.SheetsSpreadsheetID != "" {
		mirror, err := sheetstore.NewMirror(ctx, cfg.SheetsCredentialsFile, cfg.SheetsSpreadsheetID)
		if err != nil {
			logger.Warn("Sheets mirror disabled", zap.Error(err))
		} else {
			store = repository.NewCompositeStore(shiftRepo, logger, mirror)
			logger.Info("Sheets mirror enabled",
				zap.String("spreadsheet_id", cfg.SheetsSpreadsheetID))
		}
	}

	shiftService := service.NewShiftService(store, cfg.IsAdmin, cfg.Location(), logger)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, shiftService, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if cfg.ReportChatID != 0 {
		reporter := app.NewReporter(
			shiftRepo,
			b,
			cfg.ReportChatID,
			time.Duration(cfg.ReportIntervalHours)*time.Hour,
			cfg.Location(),
			handlers.DailyReport,
			logger,
		)
		reporter.Start(ctx)
		defer reporter.Stop()
	}

	logger.Sugar().Infow("Starting shift bot",
		"environment", cfg.Environment,
		"admins", len(cfg.AdminIDs),
		"timezone_offset_hours", cfg.TimezoneOffsetHours)

	botController.Start(ctx)
}
