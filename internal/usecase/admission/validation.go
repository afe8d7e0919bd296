package admission

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// SlotRequest запрошенный интервал в сыром виде
type SlotRequest struct {
	Date          string // "YYYY-MM-DD"
	StartTime     string // "HH:MM"
	EndTime       string // "HH:MM"
	SeatsRequired *int   // nil означает одно место
}

// Slot проверенный интервал бронирования
type Slot struct {
	Date      time.Time
	Weekday   domain.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	Seats     int
}

// ValidateSlot проверяет дату, время и количество мест без обращения к хранилищу
func ValidateSlot(req SlotRequest, now time.Time) (*Slot, error) {
	date, err := types.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}
	if types.IsDateInPast(date, now) {
		return nil, fmt.Errorf("%w: %s is in the past", ErrInvalidDate, req.Date)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrInvalidTime, req.StartTime)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end %q", ErrInvalidTime, req.EndTime)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidTime, start, end)
	}

	seats := domain.DefaultSeatsRequired
	if req.SeatsRequired != nil {
		if *req.SeatsRequired < 1 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidSeatCount, *req.SeatsRequired)
		}
		seats = *req.SeatsRequired
	}

	return &Slot{
		Date:      date,
		Weekday:   domain.WeekdayOfTime(date),
		StartTime: start,
		EndTime:   end,
		Seats:     seats,
	}, nil
}
