package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vpetrenko/smena_bot/internal/model"
)

type ShiftRepository struct {
	pool *pgxpool.Pool
}

func NewShiftRepository(pool *pgxpool.Pool) *ShiftRepository {
	return &ShiftRepository{pool: pool}
}

const shiftColumns = `id, submitter_id, full_name, shift_date, start_time, end_time, zone, witag, status, media_ref, created_at`

// Insert сохраняет смену и заполняет её ID
func (r *ShiftRepository) Insert(ctx context.Context, shift *model.Shift) error {
	query := `
		INSERT INTO shifts (submitter_id, full_name, shift_date, start_time, end_time, zone, witag, status, media_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.pool.QueryRow(
		ctx, query,
		shift.SubmitterID,
		shift.FullName,
		shift.ShiftDate,
		shift.StartTime,
		shift.EndTime,
		shift.Zone,
		shift.Witag,
		shift.Status,
		shift.MediaRef,
		shift.CreatedAt,
	).Scan(&shift.ID)

	if err != nil {
		return fmt.Errorf("insert shift: %w", err)
	}

	return nil
}

// FindByID получает смену по ID, nil если её нет
func (r *ShiftRepository) FindByID(ctx context.Context, id int64) (*model.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	shift, err := scanShift(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift by id: %w", err)
	}

	return shift, nil
}

// FindByUserAndDate получает смены сотрудника на дату (любой статус)
func (r *ShiftRepository) FindByUserAndDate(ctx context.Context, submitterID int64, date string) ([]*model.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE submitter_id = $1 AND shift_date = $2
		ORDER BY start_time ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, submitterID, date)
	if err != nil {
		return nil, fmt.Errorf("get shifts by user and date: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// FindByDate получает все смены на дату
func (r *ShiftRepository) FindByDate(ctx context.Context, date string) ([]*model.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE shift_date = $1
		ORDER BY start_time ASC, full_name ASC
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get shifts by date: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// FindAll получает все смены
func (r *ShiftRepository) FindAll(ctx context.Context) ([]*model.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all shifts: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// UpdateStatusFrom меняет статус смены при условии, что текущий статус
// равен from. Возвращает false, если смена не найдена или статус уже другой.
func (r *ShiftRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to model.ShiftStatus) (bool, error) {
	query := `
		UPDATE shifts
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	result, err := r.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("update shift status: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func scanShift(row pgx.Row) (*model.Shift, error) {
	var shift model.Shift
	err := row.Scan(
		&shift.ID,
		&shift.SubmitterID,
		&shift.FullName,
		&shift.ShiftDate,
		&shift.StartTime,
		&shift.EndTime,
		&shift.Zone,
		&shift.Witag,
		&shift.Status,
		&shift.MediaRef,
		&shift.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func collectShifts(rows pgx.Rows) ([]*model.Shift, error) {
	var shifts []*model.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}
