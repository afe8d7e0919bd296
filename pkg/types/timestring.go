package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// ErrInvalidTimeString возвращается при некорректном формате времени (ожидается HH:MM)
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток без даты в формате "HH:MM" (24 часа)
// Значение хранится как есть: строки из БД не валидируются при чтении,
// чтобы частично повреждённые записи не ломали выборку.
type TimeString string

// NewTimeStringFromString создает TimeString из строки с проверкой формата
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, ok := MinutesOf(s); !ok {
		return "", ErrInvalidTimeString
	}
	return TimeString(s), nil
}

// MinutesOf переводит "HH:MM" в минуты с начала суток.
// Для некорректной строки возвращает ok=false (без ошибки).
func MinutesOf(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}

	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	minutes := int(s[3]-'0')*10 + int(s[4]-'0')

	if hours > 23 || minutes > 59 {
		return 0, false
	}

	return hours*60 + minutes, true
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, bool) {
	return MinutesOf(string(t))
}

// IsBefore возвращает true, если t строго раньше other.
// Некорректные значения никогда не сравниваются.
func (t TimeString) IsBefore(other TimeString) bool {
	a, okA := t.Minutes()
	b, okB := other.Minutes()
	return okA && okB && a < b
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(string(v))
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}
