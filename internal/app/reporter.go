package app

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vpetrenko/smena_bot/internal/model"
	"go.uber.org/zap"
)

// DailyShifts read-only срез хранилища, нужный отчёту
type DailyShifts interface {
	FindByDate(ctx context.Context, date string) ([]*model.Shift, error)
}

// FormatFunc рендерит список смен за дату в текст отчёта
type FormatFunc func(date string, shifts []*model.Shift) string

// Reporter фоновая задача: периодически отправляет отчёт по сменам за
// текущий день в чат администраторов. В конвейер заявок не входит, только
// читает хранилище.
type Reporter struct {
	store    DailyShifts
	bot      *bot.Bot
	chatID   int64
	interval time.Duration
	loc      *time.Location
	format   FormatFunc
	logger   *zap.Logger
	stopChan chan struct{}
}

func NewReporter(
	store DailyShifts,
	b *bot.Bot,
	chatID int64,
	interval time.Duration,
	loc *time.Location,
	format FormatFunc,
	logger *zap.Logger,
) *Reporter {
	return &Reporter{
		store:    store,
		bot:      b,
		chatID:   chatID,
		interval: interval,
		loc:      loc,
		format:   format,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновую отправку отчётов
func (r *Reporter) Start(ctx context.Context) {
	r.logger.Info("Starting background reporter",
		zap.Int64("chat_id", r.chatID),
		zap.Duration("interval", r.interval),
	)
	go r.run(ctx)
}

// Stop останавливает фоновую задачу
func (r *Reporter) Stop() {
	r.logger.Info("Stopping background reporter")
	close(r.stopChan)
}

func (r *Reporter) run(ctx context.Context) {
	// Первый отчёт сразу при старте
	r.sendReport(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sendReport(ctx)
		case <-r.stopChan:
			r.logger.Info("Report task stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Report task cancelled")
			return
		}
	}
}

func (r *Reporter) sendReport(ctx context.Context) {
	date := time.Now().In(r.loc).Format(model.DateLayout)

	shifts, err := r.store.FindByDate(ctx, date)
	if err != nil {
		r.logger.Error("Failed to load shifts for report",
			zap.String("date", date),
			zap.Error(err),
		)
		return
	}

	_, err = r.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    r.chatID,
		Text:      r.format(date, shifts),
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		r.logger.Error("Failed to send report",
			zap.Int64("chat_id", r.chatID),
			zap.Error(err),
		)
		return
	}

	r.logger.Info("Daily report sent",
		zap.String("date", date),
		zap.Int("shifts", len(shifts)),
	)
}
