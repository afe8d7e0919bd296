// Package usecasetest содержит хранилища в памяти для тестов use case'ов.
package usecasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	labRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/lab"
	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// LabStore хранилище лабораторий в памяти.
// Возвращает те же ошибки, что и репозиторий PostgreSQL.
type LabStore struct {
	mu sync.Mutex

	labs        map[int64]*domain.Lab
	windows     []domain.AvailabilityWindow
	disabled    map[int64]map[string]*domain.DisabledLab
	assignments map[int64]map[string]bool

	nextID int64
}

// NewLabStore создает пустое хранилище лабораторий
func NewLabStore() *LabStore {
	return &LabStore{
		labs:        make(map[int64]*domain.Lab),
		disabled:    make(map[int64]map[string]*domain.DisabledLab),
		assignments: make(map[int64]map[string]bool),
	}
}

func (s *LabStore) id() int64 {
	s.nextID++
	return s.nextID
}

// AddLab добавляет лабораторию с окнами на день недели
func (s *LabStore) AddLab(name string, capacity int, weekday domain.Weekday, slots ...string) *domain.Lab {
	lab, _ := s.Create(context.Background(), &domain.Lab{Name: name, Capacity: capacity, Equipment: []string{}})
	for _, slot := range slots {
		start, end := types.TimeString(slot[:5]), types.TimeString(slot[6:])
		_, _ = s.AddWindow(context.Background(), &domain.AvailabilityWindow{
			LabID: lab.ID, Weekday: weekday, StartTime: start, EndTime: end,
		})
	}
	return lab
}

// --- labs ---

func (s *LabStore) Create(_ context.Context, lab *domain.Lab) (*domain.Lab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.labs {
		if l.Name == lab.Name {
			return nil, labRepo.ErrDuplicateLab
		}
	}
	lab.ID = s.id()
	cp := *lab
	s.labs[lab.ID] = &cp
	return lab, nil
}

func (s *LabStore) GetByID(_ context.Context, id int64) (*domain.Lab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.labs[id]
	if !ok {
		return nil, labRepo.ErrLabNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *LabStore) GetByName(_ context.Context, name string) (*domain.Lab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.labs {
		if l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, labRepo.ErrLabNotFound
}

func (s *LabStore) List(_ context.Context) ([]*domain.Lab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Lab, 0, len(s.labs))
	for _, l := range s.labs {
		cp := *l
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *LabStore) Update(_ context.Context, lab *domain.Lab) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.labs[lab.ID]; !ok {
		return labRepo.ErrLabNotFound
	}
	cp := *lab
	s.labs[lab.ID] = &cp
	return nil
}

func (s *LabStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.labs[id]; !ok {
		return labRepo.ErrLabNotFound
	}
	delete(s.labs, id)
	delete(s.disabled, id)
	delete(s.assignments, id)
	kept := s.windows[:0]
	for _, w := range s.windows {
		if w.LabID != id {
			kept = append(kept, w)
		}
	}
	s.windows = kept
	return nil
}

// --- windows ---

func (s *LabStore) GetWindows(_ context.Context, labID int64, weekday domain.Weekday) ([]domain.AvailabilityWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.AvailabilityWindow, 0)
	for _, w := range s.windows {
		if w.LabID == labID && w.Weekday == weekday {
			result = append(result, w)
		}
	}
	return result, nil
}

func (s *LabStore) GetWindowsByWeekday(_ context.Context, weekday domain.Weekday) (map[int64][]domain.AvailabilityWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int64][]domain.AvailabilityWindow)
	for _, w := range s.windows {
		if w.Weekday == weekday {
			result[w.LabID] = append(result[w.LabID], w)
		}
	}
	return result, nil
}

func (s *LabStore) AddWindow(_ context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.ID = s.id()
	s.windows = append(s.windows, *w)
	return w, nil
}

func (s *LabStore) DeleteWindow(_ context.Context, labID, windowID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, w := range s.windows {
		if w.ID == windowID && w.LabID == labID {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			return nil
		}
	}
	return labRepo.ErrWindowNotFound
}

// --- disabled ---

func (s *LabStore) GetDisabled(_ context.Context, labID int64, date time.Time) (*domain.DisabledLab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.disabled[labID][types.FormatDate(date)]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, labRepo.ErrDisabledNotFound
}

func (s *LabStore) GetDisabledByDate(_ context.Context, date time.Time) (map[int64]*domain.DisabledLab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int64]*domain.DisabledLab)
	key := types.FormatDate(date)
	for labID, byDate := range s.disabled {
		if d, ok := byDate[key]; ok {
			cp := *d
			result[labID] = &cp
		}
	}
	return result, nil
}

func (s *LabStore) Disable(_ context.Context, d *domain.DisabledLab) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled[d.LabID] == nil {
		s.disabled[d.LabID] = make(map[string]*domain.DisabledLab)
	}
	key := types.FormatDate(d.Date)
	if existing, ok := s.disabled[d.LabID][key]; ok {
		existing.Reason = d.Reason
		d.ID = existing.ID
		return nil
	}
	d.ID = s.id()
	cp := *d
	s.disabled[d.LabID][key] = &cp
	return nil
}

func (s *LabStore) Enable(_ context.Context, labID int64, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := types.FormatDate(date)
	if _, ok := s.disabled[labID][key]; !ok {
		return labRepo.ErrDisabledNotFound
	}
	delete(s.disabled[labID], key)
	return nil
}

// --- assistants ---

func (s *LabStore) AssignAssistant(_ context.Context, a *domain.LabAssistantAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.assignments[a.LabID] == nil {
		s.assignments[a.LabID] = make(map[string]bool)
	}
	if s.assignments[a.LabID][a.AssistantID] {
		return labRepo.ErrAlreadyAssigned
	}
	s.assignments[a.LabID][a.AssistantID] = true
	a.ID = s.id()
	return nil
}

func (s *LabStore) AssignedLabIDs(_ context.Context, assistantID string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0)
	for labID, assistants := range s.assignments {
		if assistants[assistantID] {
			ids = append(ids, labID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *LabStore) IsAssigned(_ context.Context, labID int64, assistantID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.assignments[labID][assistantID], nil
}
