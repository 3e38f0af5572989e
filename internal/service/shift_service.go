package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vpetrenko/smena_bot/internal/caption"
	"github.com/vpetrenko/smena_bot/internal/model"
	"go.uber.org/zap"
)

// ShiftStore хранилище смен. Insert заполняет ID и CreatedAt записи.
type ShiftStore interface {
	Insert(ctx context.Context, shift *model.Shift) error
	FindByID(ctx context.Context, id int64) (*model.Shift, error)
	FindByUserAndDate(ctx context.Context, submitterID int64, date string) ([]*model.Shift, error)
	FindByDate(ctx context.Context, date string) ([]*model.Shift, error)
	FindAll(ctx context.Context) ([]*model.Shift, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to model.ShiftStatus) (bool, error)
}

type ShiftService struct {
	store   ShiftStore
	isAdmin func(int64) bool
	loc     *time.Location
	locks   *submitLocks
	logger  *zap.Logger
}

func NewShiftService(store ShiftStore, isAdmin func(int64) bool, loc *time.Location, logger *zap.Logger) *ShiftService {
	return &ShiftService{
		store:   store,
		isAdmin: isAdmin,
		loc:     loc,
		locks:   newSubmitLocks(),
		logger:  logger,
	}
}

// IsAdmin проверяет принадлежность пользователя к списку администраторов
func (s *ShiftService) IsAdmin(userID int64) bool {
	return s.isAdmin(userID)
}

// DateFor возвращает дату смены для момента now в фиксированном поясе
func (s *ShiftService) DateFor(now time.Time) string {
	return now.In(s.loc).Format(model.DateLayout)
}

// Submit проводит заявку через весь конвейер: разбор подписи, проверка
// полей, проверка пересечений, сохранение. Заявка оценивается один раз,
// без повторов — повторная отправка это новый вызов Submit.
//
// Дата смены всегда проставляется сервером: "сегодня" в фиксированном
// поясе, из подписи она не берётся.
func (s *ShiftService) Submit(ctx context.Context, rawCaption, mediaRef string, submitterID int64, now time.Time) (*model.Shift, error) {
	submissionID := uuid.NewString()

	sub, err := caption.Parse(rawCaption)
	if err != nil {
		s.logger.Info("Submission rejected at parse",
			zap.String("submission_id", submissionID),
			zap.Int64("submitter_id", submitterID),
			zap.Error(err),
		)
		return nil, err
	}

	valid, err := caption.Validate(sub)
	if err != nil {
		s.logger.Info("Submission rejected at validation",
			zap.String("submission_id", submissionID),
			zap.Int64("submitter_id", submitterID),
			zap.Error(err),
		)
		return nil, err
	}

	date := s.DateFor(now)

	// Проверка пересечений и вставка — два обращения к хранилищу;
	// блокировка пары (сотрудник, дата) закрывает окно между ними
	mu := s.locks.acquire(submitterID, date)
	defer mu.Unlock()

	existing, err := s.store.FindByUserAndDate(ctx, submitterID, date)
	if err != nil {
		s.logger.Error("Failed to read existing shifts",
			zap.String("submission_id", submissionID),
			zap.Int64("submitter_id", submitterID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if conflict := FindConflict(valid.StartMinute, valid.EndMinute, existing); conflict != nil {
		s.logger.Info("Submission rejected: overlap",
			zap.String("submission_id", submissionID),
			zap.Int64("submitter_id", submitterID),
			zap.String("candidate", valid.StartTime+"-"+valid.EndTime),
			zap.String("conflict", conflict.StartTime+"-"+conflict.EndTime),
		)
		return nil, &OverlapError{Conflict: conflict}
	}

	shift := &model.Shift{
		SubmitterID: submitterID,
		FullName:    valid.FullName,
		ShiftDate:   date,
		StartTime:   valid.StartTime,
		EndTime:     valid.EndTime,
		Zone:        valid.Zone,
		Witag:       valid.Witag,
		Status:      model.ShiftStatusActive,
		MediaRef:    mediaRef,
		CreatedAt:   now.In(s.loc),
	}

	if err := s.store.Insert(ctx, shift); err != nil {
		s.logger.Error("Failed to insert shift",
			zap.String("submission_id", submissionID),
			zap.Int64("submitter_id", submitterID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Shift stored",
		zap.String("submission_id", submissionID),
		zap.Int64("shift_id", shift.ID),
		zap.Int64("submitter_id", submitterID),
		zap.String("full_name", shift.FullName),
		zap.String("date", shift.ShiftDate),
		zap.String("interval", shift.StartTime+"-"+shift.EndTime),
	)

	return shift, nil
}

// Complete переводит активную смену в статус completed
func (s *ShiftService) Complete(ctx context.Context, adminID, shiftID int64) (*model.Shift, error) {
	return s.transition(ctx, adminID, shiftID, model.ShiftStatusCompleted)
}

// Cancel переводит активную смену в статус canceled, освобождая её время
// для повторной записи
func (s *ShiftService) Cancel(ctx context.Context, adminID, shiftID int64) (*model.Shift, error) {
	return s.transition(ctx, adminID, shiftID, model.ShiftStatusCanceled)
}

// transition выполняет односторонний переход active -> terminal.
// Повторный переход уже закрытой смены отклоняется, а не перезаписывается.
func (s *ShiftService) transition(ctx context.Context, adminID, shiftID int64, to model.ShiftStatus) (*model.Shift, error) {
	if !s.isAdmin(adminID) {
		return nil, ErrUnauthorized
	}

	shift, err := s.store.FindByID(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if shift == nil {
		return nil, ErrNotFound
	}
	if shift.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	// Статус в условии UPDATE сериализует параллельные переходы по
	// одному id: второй из них не затронет ни одной строки
	updated, err := s.store.UpdateStatusFrom(ctx, shiftID, model.ShiftStatusActive, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !updated {
		return nil, ErrInvalidTransition
	}

	shift.Status = to

	s.logger.Info("Shift status changed",
		zap.Int64("shift_id", shiftID),
		zap.Int64("admin_id", adminID),
		zap.String("status", string(to)),
	)

	return shift, nil
}

// ShiftsForDate возвращает смены на дату. Только для администраторов.
func (s *ShiftService) ShiftsForDate(ctx context.Context, requesterID int64, date string) ([]*model.Shift, error) {
	if !s.isAdmin(requesterID) {
		return nil, ErrUnauthorized
	}

	shifts, err := s.store.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return shifts, nil
}

// AllShifts возвращает все смены. Только для администраторов.
func (s *ShiftService) AllShifts(ctx context.Context, requesterID int64) ([]*model.Shift, error) {
	if !s.isAdmin(requesterID) {
		return nil, ErrUnauthorized
	}

	shifts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return shifts, nil
}
