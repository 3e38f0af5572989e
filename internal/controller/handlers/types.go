package handlers

import (
	"github.com/vpetrenko/smena_bot/internal/service"
	"go.uber.org/zap"
)

type Handlers struct {
	shiftService *service.ShiftService
	logger       *zap.Logger
}

func NewHandlers(shiftService *service.ShiftService, logger *zap.Logger) *Handlers {
	return &Handlers{
		shiftService: shiftService,
		logger:       logger,
	}
}
