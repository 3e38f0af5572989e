package model

import "time"

type ShiftStatus string

const (
	ShiftStatusActive    ShiftStatus = "active"    // Смена записана и идёт
	ShiftStatusCompleted ShiftStatus = "completed" // Завершена администратором
	ShiftStatusCanceled  ShiftStatus = "canceled"  // Отменена администратором
)

// Terminal сообщает, является ли статус конечным
func (s ShiftStatus) Terminal() bool {
	return s == ShiftStatusCompleted || s == ShiftStatusCanceled
}

// DateLayout формат даты смены (как в подписи: ДД.ММ.ГГ)
const DateLayout = "02.01.06"

type Shift struct {
	ID          int64       `json:"id"`
	SubmitterID int64       `json:"submitter_id"`
	FullName    string      `json:"full_name"`
	ShiftDate   string      `json:"shift_date"` // ДД.ММ.ГГ в фиксированном часовом поясе
	StartTime   string      `json:"start_time"` // ЧЧ:ММ
	EndTime     string      `json:"end_time"`   // ЧЧ:ММ, строго позже начала
	Zone        string      `json:"zone"`       // "Зона N"
	Witag       string      `json:"witag"`      // "W witag N", пустая строка если не указан
	Status      ShiftStatus `json:"status"`
	MediaRef    string      `json:"media_ref"` // file_id фотографии, передаётся как есть
	CreatedAt   time.Time   `json:"created_at"`
}

// ShiftSubmission разобранная подпись до проверки полей
type ShiftSubmission struct {
	FullName  string
	StartTime string
	EndTime   string
	Zone      string
	Witag     string // пустая строка — строки witag не было
}

// ValidSubmission заявка, прошедшая проверку полей.
// Время продублировано в минутах от полуночи для проверки пересечений.
type ValidSubmission struct {
	ShiftSubmission
	StartMinute int
	EndMinute   int
}

// MinutesOfDay переводит строку ЧЧ:ММ в минуты от полуночи.
// Часы 00-23, минуты 00-59, ровно пять символов.
func MinutesOfDay(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
