package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendMarkdown отправляет сообщение с markdown разметкой
func (h *Handlers) sendMarkdown(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// requireAdmin проверяет права администратора, при отказе отвечает сам
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) (int64, bool) {
	if update.Message == nil {
		return 0, false
	}

	userID := update.Message.From.ID
	if !h.shiftService.IsAdmin(userID) {
		h.logger.Warn("Non-admin tried an admin command",
			zap.Int64("user_id", userID),
			zap.String("text", update.Message.Text),
		)
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"🚫 Эта команда доступна только для авторизованных администраторов.")
		return 0, false
	}

	return userID, true
}
