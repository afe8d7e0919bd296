package usecasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// BookingStore хранилище бронирований в памяти
type BookingStore struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
	nextID   int64

	// Reads число вызовов GetActiveByLabAndDate
	Reads int
}

// NewBookingStore создает пустое хранилище бронирований
func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[int64]*domain.Booking)}
}

// Add кладёт бронирование напрямую, без проверок
func (s *BookingStore) Add(b *domain.Booking) *domain.Booking {
	created, _ := s.Create(context.Background(), b)
	return created
}

// All возвращает копии всех бронирований по возрастанию ID
func (s *BookingStore) All() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		cp := *b
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *BookingStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	b.ID = s.nextID
	cp := *b
	s.bookings[b.ID] = &cp
	return b, nil
}

func (s *BookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *BookingStore) GetActiveByLabAndDate(_ context.Context, labName string, date time.Time) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Reads++
	return s.filter(func(b *domain.Booking) bool {
		return b.LabName == labName && types.IsSameDay(b.BookingDate, date) && b.IsActive()
	}), nil
}

func (s *BookingStore) GetByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(b *domain.Booking) bool {
		return types.IsSameDay(b.BookingDate, date)
	}), nil
}

func (s *BookingStore) GetByUserID(_ context.Context, userID string) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(b *domain.Booking) bool { return b.UserID == userID }), nil
}

func (s *BookingStore) Update(_ context.Context, b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *BookingStore) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = &updatedAt
	return nil
}

func (s *BookingStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *BookingStore) filter(keep func(*domain.Booking) bool) []*domain.Booking {
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if keep(b) {
			cp := *b
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].ID < result[j].ID
	})
	return result
}
