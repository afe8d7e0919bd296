package usecasetest

import (
	"context"
	"time"
)

// TxManager выполняет функцию без настоящей транзакции
type TxManager struct {
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// Clock фиксированное время
type Clock struct {
	T time.Time
}

func (c Clock) Now() time.Time {
	return c.T
}

// NewClock возвращает часы на полдень указанной даты в локальной зоне
func NewClock(year int, month time.Month, day int) Clock {
	return Clock{T: time.Date(year, month, day, 12, 0, 0, 0, time.Local)}
}
