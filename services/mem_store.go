package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iamdew/yellostory-lunch/models"
)

// MemStore keeps menus in process memory. It serves local runs without a
// database and handler tests.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]models.LunchMenu
	now    func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		items: make(map[int64]models.LunchMenu),
		now:   time.Now,
	}
}

func (s *MemStore) FindLunch(_ context.Context, category, date string) (*models.LunchMenu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.items {
		if m.Category == category && m.Date == date {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (s *MemStore) FindAllLunch(_ context.Context, filter models.LunchFilter) ([]models.LunchMenu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := []models.LunchMenu{}
	for _, m := range s.items {
		// YYYY-MM-DD compares correctly as a string.
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		if filter.StartDate != "" && m.Date < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && m.Date > filter.EndDate {
			continue
		}
		items = append(items, m)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].Category < items[j].Category
	})
	return items, nil
}

func (s *MemStore) CreateLunch(_ context.Context, in *models.LunchMenu) (*models.LunchMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, m := range s.items {
		if m.Category == in.Category && m.Date == in.Date {
			m.Foods = in.Foods
			m.UpdatedAt = now
			s.items[id] = m
			return &m, nil
		}
	}
	s.nextID++
	m := models.LunchMenu{
		ID:        s.nextID,
		Date:      in.Date,
		Category:  in.Category,
		Foods:     in.Foods,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.items[m.ID] = m
	return &m, nil
}

func (s *MemStore) UpdateLunchMenu(_ context.Context, id int64, foods string) (*models.LunchMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("update lunch %d: not found", id)
	}
	m.Foods = foods
	m.UpdatedAt = s.now()
	s.items[id] = m
	return &m, nil
}

func (s *MemStore) RemoveLunch(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *MemStore) Ping(context.Context) error {
	return nil
}

// Len reports how many menus are stored.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
