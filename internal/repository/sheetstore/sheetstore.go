package sheetstore

import (
	"context"
	"fmt"

	"github.com/vpetrenko/smena_bot/internal/model"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Mirror дублирует сохранённые смены в Google-таблицу: одна смена — одна
// строка. Форматированием таблицы зеркало не занимается, только значения.
type Mirror struct {
	srv           *sheets.Service
	spreadsheetID string
}

func NewMirror(ctx context.Context, credentialsFile, spreadsheetID string) (*Mirror, error) {
	srv, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init google sheets client: %w", err)
	}

	return &Mirror{
		srv:           srv,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Append добавляет строку со сменой в конец таблицы
func (m *Mirror) Append(ctx context.Context, shift *model.Shift) error {
	row := []interface{}{
		shift.ID,
		shift.ShiftDate,
		shift.FullName,
		shift.StartTime,
		shift.EndTime,
		shift.Zone,
		shift.Witag,
		string(shift.Status),
		shift.CreatedAt.Format("02.01.2006 15:04"),
	}

	_, err := m.srv.Spreadsheets.Values.
		Append(m.spreadsheetID, "A1", &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append shift row: %w", err)
	}

	return nil
}
