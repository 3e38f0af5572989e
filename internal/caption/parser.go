package caption

import (
	"errors"
	"regexp"
	"strings"

	"github.com/vpetrenko/smena_bot/internal/model"
)

var (
	// ErrNoCaption подпись отсутствует или состоит из пробелов
	ErrNoCaption = errors.New("caption is empty")
	// ErrInvalidFormat подпись не соответствует формату
	ErrInvalidFormat = errors.New("caption does not match the expected format")
)

// Единая грамматика подписи с одной необязательной последней строкой.
// Ранние версии бота держали две альтернативные ветки (с witag и без),
// дублируя все группы — одна ветка могла молча совпасть вместо другой.
var captionPattern = regexp.MustCompile(
	`(?i)^(?P<name>[A-Za-zА-Яа-яЁё ]+)\n` +
		`(?P<start>\d{2}:\d{2}) (?P<end>\d{2}:\d{2})\n` +
		`(?P<zone>Зона +\d+)` +
		`(?:\n(?P<witag>W +witag +\d+))?$`,
)

var (
	idxName  = captionPattern.SubexpIndex("name")
	idxStart = captionPattern.SubexpIndex("start")
	idxEnd   = captionPattern.SubexpIndex("end")
	idxZone  = captionPattern.SubexpIndex("zone")
	idxWitag = captionPattern.SubexpIndex("witag")
)

// Parse разбирает подпись к фотографии в заявку на смену.
// Возвращает ErrNoCaption для пустой подписи и ErrInvalidFormat при любом
// отклонении от грамматики — частичного разбора не бывает.
func Parse(raw string) (*model.ShiftSubmission, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, ErrNoCaption
	}

	m := captionPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, ErrInvalidFormat
	}

	return &model.ShiftSubmission{
		FullName:  strings.TrimSpace(m[idxName]),
		StartTime: m[idxStart],
		EndTime:   m[idxEnd],
		Zone:      m[idxZone],
		Witag:     m[idxWitag],
	}, nil
}
