package repository

import (
	"context"

	"github.com/vpetrenko/smena_bot/internal/model"
	"go.uber.org/zap"
)

// MirrorStore получает копию каждой сохранённой смены
type MirrorStore interface {
	Append(ctx context.Context, shift *model.Shift) error
}

// CompositeStore пишет в основное хранилище и рассылает копии зеркалам.
// Основное хранилище авторитетно: его ошибка проваливает запись, ошибки
// зеркал только логируются. Чтения всегда идут в основное хранилище.
type CompositeStore struct {
	*ShiftRepository
	mirrors []MirrorStore
	logger  *zap.Logger
}

func NewCompositeStore(primary *ShiftRepository, logger *zap.Logger, mirrors ...MirrorStore) *CompositeStore {
	return &CompositeStore{
		ShiftRepository: primary,
		mirrors:         mirrors,
		logger:          logger,
	}
}

func (c *CompositeStore) Insert(ctx context.Context, shift *model.Shift) error {
	if err := c.ShiftRepository.Insert(ctx, shift); err != nil {
		return err
	}

	for _, m := range c.mirrors {
		if err := m.Append(ctx, shift); err != nil {
			c.logger.Warn("Mirror append failed",
				zap.Int64("shift_id", shift.ID),
				zap.Error(err),
			)
		}
	}

	return nil
}
