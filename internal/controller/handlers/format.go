package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vpetrenko/smena_bot/internal/model"
)

// Фиксированные интервалы двух рабочих смен организации
const (
	morningStart = "07:00"
	morningEnd   = "15:00"
	eveningStart = "15:00"
	eveningEnd   = "23:00"
)

// DailyReport рендерит смены за дату в текст отчёта: утренняя и вечерняя
// группы плюс остальные интервалы. Отменённые смены в отчёт не входят.
// Списки отсортированы для воспроизводимости.
func DailyReport(date string, shifts []*model.Shift) string {
	var morning, evening, other []string

	for _, s := range shifts {
		if s.Status == model.ShiftStatusCanceled {
			continue
		}

		witag := s.Witag
		if witag == "" {
			witag = "Нет"
		}
		line := fmt.Sprintf("  - `%s` (%s, Witag: %s)", s.FullName, s.Zone, witag)

		switch {
		case s.StartTime == morningStart && s.EndTime == morningEnd:
			morning = append(morning, line)
		case s.StartTime == eveningStart && s.EndTime == eveningEnd:
			evening = append(evening, line)
		default:
			other = append(other, fmt.Sprintf("  - `%s` %s-%s (%s, Witag: %s)",
				s.FullName, s.StartTime, s.EndTime, s.Zone, witag))
		}
	}

	sort.Strings(morning)
	sort.Strings(evening)
	sort.Strings(other)

	var report []string
	report = append(report, fmt.Sprintf("**📊 Отчет по сменам на %s**\n", date))

	report = append(report, fmt.Sprintf("**☀️ Утренняя смена (%s - %s):**", morningStart, morningEnd))
	if len(morning) > 0 {
		report = append(report, morning...)
	} else {
		report = append(report, "  - *Нет сотрудников*")
	}

	report = append(report, "")

	report = append(report, fmt.Sprintf("**🌙 Вечерняя смена (%s - %s):**", eveningStart, eveningEnd))
	if len(evening) > 0 {
		report = append(report, evening...)
	} else {
		report = append(report, "  - *Нет сотрудников*")
	}

	if len(other) > 0 {
		report = append(report, "", "**🕑 Прочие интервалы:**")
		report = append(report, other...)
	}

	return strings.Join(report, "\n")
}

// AllShiftsReport рендерит полный список смен со статусами
func AllShiftsReport(shifts []*model.Shift) string {
	if len(shifts) == 0 {
		return "📄 Смен пока нет."
	}

	lines := make([]string, 0, len(shifts)+1)
	lines = append(lines, fmt.Sprintf("**📋 Всего: %d %s**\n", len(shifts), PluralizeShifts(len(shifts))))

	for _, s := range shifts {
		lines = append(lines, fmt.Sprintf("#%d `%s` %s %s-%s (%s) — %s",
			s.ID, s.FullName, s.ShiftDate, s.StartTime, s.EndTime, s.Zone, statusLabel(s.Status)))
	}

	return strings.Join(lines, "\n")
}

// PluralizeShifts возвращает правильное склонение слова "смена"
func PluralizeShifts(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "смена"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "смены"
	}
	return "смен"
}

func statusLabel(status model.ShiftStatus) string {
	switch status {
	case model.ShiftStatusActive:
		return "активна"
	case model.ShiftStatusCompleted:
		return "завершена"
	case model.ShiftStatusCanceled:
		return "отменена"
	}
	return string(status)
}
