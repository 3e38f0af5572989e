package service

import "github.com/vpetrenko/smena_bot/internal/model"

// FindConflict ищет среди существующих смен пересечение с кандидатом
// [startMin, endMin). Интервалы полуоткрытые: [s1,e1) и [s2,e2) пересекаются
// тогда и только тогда, когда s1 < e2 && e1 > s2, поэтому смены встык
// (07:00-15:00 и 15:00-23:00) конфликтом не считаются.
//
// Отменённые смены освобождают своё время и не участвуют в проверке.
// Результат не зависит от порядка существующих смен: из всех конфликтов
// возвращается смена с самым ранним началом (при равных началах — с
// меньшим id).
func FindConflict(startMin, endMin int, existing []*model.Shift) *model.Shift {
	var conflict *model.Shift
	conflictStart := 0

	for _, s := range existing {
		if s.Status == model.ShiftStatusCanceled {
			continue
		}

		s1, ok := model.MinutesOfDay(s.StartTime)
		if !ok {
			continue
		}
		s2, ok := model.MinutesOfDay(s.EndTime)
		if !ok {
			continue
		}

		if startMin >= s2 || endMin <= s1 {
			continue
		}

		if conflict == nil || s1 < conflictStart ||
			(s1 == conflictStart && s.ID < conflict.ID) {
			conflict = s
			conflictStart = s1
		}
	}

	return conflict
}
