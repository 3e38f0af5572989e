package callbacks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vpetrenko/smena_bot/internal/model"
	"github.com/vpetrenko/smena_bot/internal/service"
	"go.uber.org/zap"
)

// Форматы callback data
const (
	CompleteShift = "complete_shift:" // complete_shift:123
	CancelShift   = "cancel_shift:"   // cancel_shift:123
)

type Handler struct {
	shiftService *service.ShiftService
	logger       *zap.Logger
}

func NewHandler(shiftService *service.ShiftService, logger *zap.Logger) *Handler {
	return &Handler{
		shiftService: shiftService,
		logger:       logger,
	}
}

// StatusKeyboard кнопки управления статусом под карточкой смены
func StatusKeyboard(shiftID int64) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Завершить", CallbackData: fmt.Sprintf("%s%d", CompleteShift, shiftID)},
				{Text: "🚫 Отменить", CallbackData: fmt.Sprintf("%s%d", CancelShift, shiftID)},
			},
		},
	}
}

// HandleCallbackQuery распределяет нажатия inline кнопок
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	data := callback.Data

	h.logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
	)

	switch {
	case strings.HasPrefix(data, CompleteShift):
		h.handleTransition(ctx, b, callback, data, h.shiftService.Complete, "завершена")
	case strings.HasPrefix(data, CancelShift):
		h.handleTransition(ctx, b, callback, data, h.shiftService.Cancel, "отменена")
	default:
		h.answer(ctx, b, callback.ID, "", false)
	}
}

type transitionFunc func(ctx context.Context, adminID, shiftID int64) (*model.Shift, error)

func (h *Handler) handleTransition(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	data string,
	apply transitionFunc,
	done string,
) {
	shiftID, err := parseShiftID(data)
	if err != nil {
		h.logger.Error("Failed to parse callback data", zap.String("data", data), zap.Error(err))
		h.answer(ctx, b, callback.ID, "❌ Неверный формат", true)
		return
	}

	shift, err := apply(ctx, callback.From.ID, shiftID)
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		h.answer(ctx, b, callback.ID, "🚫 Доступно только администраторам", true)
		return
	case errors.Is(err, service.ErrNotFound):
		h.answer(ctx, b, callback.ID, "❌ Смена не найдена", true)
		return
	case errors.Is(err, service.ErrInvalidTransition):
		h.answer(ctx, b, callback.ID, "Смена уже закрыта", true)
		return
	case err != nil:
		h.logger.Error("Failed to change shift status",
			zap.Int64("shift_id", shiftID),
			zap.Error(err),
		)
		h.answer(ctx, b, callback.ID, "❗️ Внутренняя ошибка. Попробуйте позже.", true)
		return
	}

	h.answer(ctx, b, callback.ID, fmt.Sprintf("Смена #%d %s", shiftID, done), false)

	// Убираем кнопки и дописываем итог в карточку
	if msg := callback.Message.Message; msg != nil {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      fmt.Sprintf("%s\n\n— Смена %s (%s-%s)", msg.Text, done, shift.StartTime, shift.EndTime),
		})
		if err != nil {
			h.logger.Error("Failed to edit shift card",
				zap.Int64("chat_id", msg.Chat.ID),
				zap.Error(err),
			)
		}
	}
}

// answer отвечает на callback query, с alert или без
func (h *Handler) answer(ctx context.Context, b *bot.Bot, callbackID, text string, alert bool) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		h.logger.Error("Failed to answer callback", zap.Error(err))
	}
}

// parseShiftID извлекает ID из callback data вида "complete_shift:123"
func parseShiftID(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid callback data format")
	}
	return strconv.ParseInt(parts[1], 10, 64)
}
