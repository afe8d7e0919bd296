package types

import (
	"errors"
	"time"
)

// DateFormat формат календарной даты на проводе
const DateFormat = "2006-01-02"

// ErrInvalidDateString возвращается, если строка не является корректной датой YYYY-MM-DD
var ErrInvalidDateString = errors.New("invalid date string")

// ParseDate разбирает дату "YYYY-MM-DD" в локальной зоне сервера.
// Дата должна совпадать со своим обратным форматированием,
// поэтому "2024-02-30" или "2024-2-3" отклоняются.
func ParseDate(s string) (time.Time, error) {
	date, err := time.ParseInLocation(DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateString
	}

	if date.Format(DateFormat) != s {
		return time.Time{}, ErrInvalidDateString
	}

	return date, nil
}

// FormatDate форматирует дату в "YYYY-MM-DD"
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// DateOnly обнуляет время, оставляя календарную дату в зоне t
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня (по календарю, без времени)
func IsDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	dateOnly := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
