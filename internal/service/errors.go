package service

import (
	"errors"
	"fmt"

	"github.com/vpetrenko/smena_bot/internal/model"
)

var (
	// ErrUnauthorized операция доступна только администраторам
	ErrUnauthorized = errors.New("operation requires admin rights")
	// ErrNotFound смена с таким id не найдена
	ErrNotFound = errors.New("shift not found")
	// ErrInvalidTransition смена уже в конечном статусе, переходы односторонние
	ErrInvalidTransition = errors.New("shift is already in a terminal status")
	// ErrStoreUnavailable хранилище недоступно, заявка не сохранена
	ErrStoreUnavailable = errors.New("shift store unavailable")
)

// OverlapError кандидат пересекается с уже записанной сменой того же
// сотрудника на ту же дату. Несёт конфликтующую смену для показа.
type OverlapError struct {
	Conflict *model.Shift
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("shift overlaps existing interval %s-%s",
		e.Conflict.StartTime, e.Conflict.EndTime)
}
