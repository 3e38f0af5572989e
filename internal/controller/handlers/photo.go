package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vpetrenko/smena_bot/internal/caption"
	"github.com/vpetrenko/smena_bot/internal/controller/callbacks"
	"github.com/vpetrenko/smena_bot/internal/service"
	"go.uber.org/zap"
)

// HandlePhoto обрабатывает фото с подписью: проводит заявку через конвейер
// и отвечает либо карточкой смены, либо конкретной причиной отказа с
// примером формата. Частичного восстановления подписи нет.
func (h *Handlers) HandlePhoto(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || len(update.Message.Photo) == 0 {
		return
	}

	msg := update.Message
	submitterID := msg.From.ID

	// У Telegram несколько размеров одного фото, последний — самый крупный
	mediaRef := msg.Photo[len(msg.Photo)-1].FileID

	h.logger.Info("Photo submission received",
		zap.Int64("submitter_id", submitterID),
		zap.String("user_name", msg.From.FirstName),
	)

	shift, err := h.shiftService.Submit(ctx, msg.Caption, mediaRef, submitterID, time.Now())
	if err != nil {
		h.replySubmissionError(ctx, b, msg.Chat.ID, err)
		return
	}

	witag := shift.Witag
	if witag == "" {
		witag = "Нет"
	}

	text := fmt.Sprintf(
		"✅ Сотрудник **%s** успешно записан на смену.\n"+
			"Дата: `%s`\n"+
			"Время: `%s-%s`\n"+
			"Зона: `%s`\n"+
			"Witag: `%s`",
		shift.FullName, shift.ShiftDate, shift.StartTime, shift.EndTime, shift.Zone, witag,
	)

	params := &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	}

	// Администраторам показываем кнопки управления статусом
	if h.shiftService.IsAdmin(submitterID) {
		params.ReplyMarkup = callbacks.StatusKeyboard(shift.ID)
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send shift confirmation",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Error(err),
		)
	}
}

func (h *Handlers) replySubmissionError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	var overlap *service.OverlapError

	switch {
	case errors.Is(err, caption.ErrNoCaption):
		h.sendMessage(ctx, b, chatID,
			"❌ Пожалуйста, добавьте подпись к фотографии в указанном формате.")

	case errors.Is(err, caption.ErrInvalidFormat):
		h.sendMarkdown(ctx, b, chatID,
			"❌ Неверный формат данных в подписи. Пожалуйста, проверьте и попробуйте снова.\n"+
				"Используйте формат:\n"+formatExample)

	case errors.Is(err, caption.ErrInvalidTime):
		h.sendMarkdown(ctx, b, chatID,
			"❌ Неверный формат времени. Используйте формат **ЧЧ:ММ** (например, 07:00).")

	case errors.Is(err, caption.ErrInvalidOrder):
		h.sendMessage(ctx, b, chatID,
			"❌ Время начала смены должно быть раньше времени окончания смены.")

	case errors.As(err, &overlap):
		h.sendMarkdown(ctx, b, chatID, fmt.Sprintf(
			"❌ Смена пересекается с уже записанной: `%s-%s` (%s).",
			overlap.Conflict.StartTime, overlap.Conflict.EndTime, overlap.Conflict.Zone))

	default:
		// Хранилище недоступно или иная внутренняя ошибка — об успехе
		// не сообщаем никогда
		h.logger.Error("Submission failed", zap.Error(err))
		h.sendMessage(ctx, b, chatID,
			"❗️ Произошла внутренняя ошибка при сохранении данных. Попробуйте позже.")
	}
}
