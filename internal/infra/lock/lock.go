package lock

import (
	"errors"
	"fmt"
	"time"
)

// ErrLockTimeout возвращается, когда блокировку не удалось захватить вовремя
var ErrLockTimeout = errors.New("lock: timeout acquiring lock")

// Unlock освобождает захваченную блокировку
type Unlock func()

// AdmissionKey ключ блокировки проверки мест для лаборатории на дату
func AdmissionKey(labName string, date time.Time) string {
	return fmt.Sprintf("admission:%s:%s", labName, date.Format("2006-01-02"))
}
