package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// formatExample каноничный пример подписи, показывается при любой ошибке
// формата. Дата в подписи не указывается — смена записывается на сегодня.
const formatExample = "```\n" +
	"Имя Фамилия\n" +
	"ЧЧ:ММ ЧЧ:ММ (например, 07:00 15:00)\n" +
	"Зона XX (например, Зона 12)\n" +
	"W witag XX (необязательно)\n" +
	"```"

const welcomeText = "👋 Привет! Я бот для учета смен.\n" +
	"Чтобы записаться на смену, отправьте фото с подписью **СТРОГО** в следующем формате:\n\n" +
	formatExample + "\n\n" +
	"**Пример правильной подписи:**\n" +
	"```\n" +
	"Иван Петров\n" +
	"07:00 15:00\n" +
	"Зона 10\n" +
	"W witag 5\n" +
	"```\n\n" +
	"Если у вас нет `W witag`, просто не указывайте последнюю строку.\n" +
	"Смена записывается на текущую дату.\n\n" +
	"Пожалуйста, будьте внимательны к формату! 😊"

// HandleStart обрабатывает команды /start и /help
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMarkdown(ctx, b, update.Message.Chat.ID, welcomeText)
}
