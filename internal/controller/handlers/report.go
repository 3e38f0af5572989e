package handlers

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleReport обрабатывает команду /report — отчёт по сменам на сегодня.
// Дата берётся по фиксированному часовому поясу группы.
func (h *Handlers) HandleReport(ctx context.Context, b *bot.Bot, update *models.Update) {
	adminID, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	date := h.shiftService.DateFor(time.Now())

	shifts, err := h.shiftService.ShiftsForDate(ctx, adminID, date)
	if err != nil {
		h.logger.Error("Failed to build report", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❗️ Не удалось получить отчет. Попробуйте позже.")
		return
	}

	if len(shifts) == 0 {
		h.sendMarkdown(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("📄 На **%s** смен не найдено.", date))
		return
	}

	h.sendMarkdown(ctx, b, update.Message.Chat.ID, DailyReport(date, shifts))
}

// HandleAllShifts обрабатывает команду /allshifts — полный список смен
func (h *Handlers) HandleAllShifts(ctx context.Context, b *bot.Bot, update *models.Update) {
	adminID, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	shifts, err := h.shiftService.AllShifts(ctx, adminID)
	if err != nil {
		h.logger.Error("Failed to list shifts", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❗️ Не удалось получить список смен. Попробуйте позже.")
		return
	}

	h.sendMarkdown(ctx, b, update.Message.Chat.ID, AllShiftsReport(shifts))
}

// HandleReportImage обрабатывает команду /reportimg — отчёт на сегодня
// картинкой с таймлайном смен
func (h *Handlers) HandleReportImage(ctx context.Context, b *bot.Bot, update *models.Update) {
	adminID, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	date := h.shiftService.DateFor(time.Now())

	shifts, err := h.shiftService.ShiftsForDate(ctx, adminID, date)
	if err != nil {
		h.logger.Error("Failed to build report image", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❗️ Не удалось получить отчет. Попробуйте позже.")
		return
	}

	if len(shifts) == 0 {
		h.sendMarkdown(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("📄 На **%s** смен не найдено.", date))
		return
	}

	png, err := RenderDayImage(date, shifts)
	if err != nil {
		h.logger.Error("Failed to render report image", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❗️ Не удалось построить картинку отчета.")
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: update.Message.Chat.ID,
		Photo: &models.InputFileUpload{
			Filename: fmt.Sprintf("shifts_%s.png", date),
			Data:     bytes.NewReader(png),
		},
		Caption: fmt.Sprintf("📊 Смены на %s", date),
	})
	if err != nil {
		h.logger.Error("Failed to send report image",
			zap.Int64("chat_id", update.Message.Chat.ID),
			zap.Error(err),
		)
	}
}
