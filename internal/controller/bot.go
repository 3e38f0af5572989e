package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vpetrenko/smena_bot/internal/controller/callbacks"
	"github.com/vpetrenko/smena_bot/internal/controller/handlers"
	"github.com/vpetrenko/smena_bot/internal/service"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	shiftService *service.ShiftService,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(shiftService, logger),
		callbackHandler: callbacks.NewHandler(shiftService, logger),
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики бота
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleStart)

	// Команды администраторов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/report", bot.MatchTypeExact, c.handlers.HandleReport)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reportimg", bot.MatchTypeExact, c.handlers.HandleReportImage)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/allshifts", bot.MatchTypeExact, c.handlers.HandleAllShifts)

	// Фото с подписью — заявка на смену
	c.bot.RegisterHandler(bot.HandlerTypePhotoCaption, "", bot.MatchTypePrefix, c.handlers.HandlePhoto)

	// Фото без подписи конвейер отклоняет как NoCaption, но до
	// caption-обработчика оно не доходит — ловим отдельно
	c.bot.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil && len(update.Message.Photo) > 0 && update.Message.Caption == ""
	}, c.handlers.HandlePhoto)

	// Inline кнопки управления статусом
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Как записаться на смену"},
		{Command: "help", Description: "❓ Формат подписи"},
		{Command: "report", Description: "📊 Отчет за сегодня (админ)"},
		{Command: "reportimg", Description: "🖼 Отчет картинкой (админ)"},
		{Command: "allshifts", Description: "📋 Все смены (админ)"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
