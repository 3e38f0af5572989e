package handlers

import (
	"strings"
	"testing"

	"github.com/vpetrenko/smena_bot/internal/model"
)

func reportShift(name, start, end string, status model.ShiftStatus) *model.Shift {
	return &model.Shift{
		FullName:  name,
		ShiftDate: "17.07.25",
		StartTime: start,
		EndTime:   end,
		Zone:      "Зона 10",
		Status:    status,
	}
}

func TestDailyReport_Grouping(t *testing.T) {
	shifts := []*model.Shift{
		reportShift("Пётр Сидоров", "15:00", "23:00", model.ShiftStatusActive),
		reportShift("Иван Петров", "07:00", "15:00", model.ShiftStatusActive),
		reportShift("Анна Иванова", "10:00", "12:00", model.ShiftStatusActive),
	}

	report := DailyReport("17.07.25", shifts)

	morningIdx := strings.Index(report, "Утренняя смена")
	eveningIdx := strings.Index(report, "Вечерняя смена")
	otherIdx := strings.Index(report, "Прочие интервалы")

	if morningIdx < 0 || eveningIdx < 0 || otherIdx < 0 {
		t.Fatalf("в отчёте нет всех секций:\n%s", report)
	}
	if !(morningIdx < eveningIdx && eveningIdx < otherIdx) {
		t.Errorf("секции в неверном порядке:\n%s", report)
	}

	morningSection := report[morningIdx:eveningIdx]
	if !strings.Contains(morningSection, "Иван Петров") {
		t.Errorf("Иван Петров не попал в утреннюю смену:\n%s", report)
	}

	eveningSection := report[eveningIdx:otherIdx]
	if !strings.Contains(eveningSection, "Пётр Сидоров") {
		t.Errorf("Пётр Сидоров не попал в вечернюю смену:\n%s", report)
	}

	if !strings.Contains(report[otherIdx:], "Анна Иванова") {
		t.Errorf("нестандартный интервал не попал в прочие:\n%s", report)
	}
}

func TestDailyReport_SkipsCanceled(t *testing.T) {
	shifts := []*model.Shift{
		reportShift("Иван Петров", "07:00", "15:00", model.ShiftStatusCanceled),
	}

	report := DailyReport("17.07.25", shifts)

	if strings.Contains(report, "Иван Петров") {
		t.Errorf("отменённая смена попала в отчёт:\n%s", report)
	}
	if !strings.Contains(report, "Нет сотрудников") {
		t.Errorf("пустая секция должна быть помечена:\n%s", report)
	}
}

func TestDailyReport_EmptyWitagShownAsNone(t *testing.T) {
	report := DailyReport("17.07.25", []*model.Shift{
		reportShift("Иван Петров", "07:00", "15:00", model.ShiftStatusActive),
	})

	if !strings.Contains(report, "Witag: Нет") {
		t.Errorf("пустой witag должен показываться как «Нет»:\n%s", report)
	}
}

func TestAllShiftsReport_Statuses(t *testing.T) {
	s := reportShift("Иван Петров", "07:00", "15:00", model.ShiftStatusCompleted)
	s.ID = 7

	report := AllShiftsReport([]*model.Shift{s})

	if !strings.Contains(report, "#7") || !strings.Contains(report, "завершена") {
		t.Errorf("в списке нет id или статуса:\n%s", report)
	}
}

func TestAllShiftsReport_Empty(t *testing.T) {
	if got := AllShiftsReport(nil); !strings.Contains(got, "Смен пока нет") {
		t.Errorf("пустой список: %q", got)
	}
}

func TestPluralizeShifts(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "смена"}, {2, "смены"}, {4, "смены"}, {5, "смен"},
		{11, "смен"}, {21, "смена"}, {22, "смены"}, {100, "смен"}, {111, "смен"},
	}

	for _, tt := range tests {
		if got := PluralizeShifts(tt.count); got != tt.want {
			t.Errorf("PluralizeShifts(%d) = %q, ожидалось %q", tt.count, got, tt.want)
		}
	}
}
