package caption

import (
	"errors"

	"github.com/vpetrenko/smena_bot/internal/model"
)

var (
	// ErrInvalidTime время не в формате ЧЧ:ММ или вне диапазона суток
	ErrInvalidTime = errors.New("time is not a valid HH:MM value")
	// ErrInvalidOrder начало смены не раньше её конца
	ErrInvalidOrder = errors.New("shift start must be before its end")
)

// Validate проверяет поля заявки: строгий ЧЧ:ММ (часы 00-23, минуты 00-59)
// и строгий порядок начала и конца. Равные времена отклоняются.
// Часовые пояса здесь не участвуют — это время на стене, без даты.
func Validate(sub *model.ShiftSubmission) (*model.ValidSubmission, error) {
	start, ok := model.MinutesOfDay(sub.StartTime)
	if !ok {
		return nil, ErrInvalidTime
	}

	end, ok := model.MinutesOfDay(sub.EndTime)
	if !ok {
		return nil, ErrInvalidTime
	}

	if start >= end {
		return nil, ErrInvalidOrder
	}

	return &model.ValidSubmission{
		ShiftSubmission: *sub,
		StartMinute:     start,
		EndMinute:       end,
	}, nil
}
