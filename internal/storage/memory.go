package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/quangtran/lichviet/internal/models"
)

type MemoryStorage struct {
	mu           sync.RWMutex
	users        map[int64]*models.User
	schedules    map[int64]*models.Schedule
	interactions []*models.Interaction
	nextUserID   int64
	nextSchedID  int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:       make(map[int64]*models.User),
		schedules:   make(map[int64]*models.Schedule),
		nextUserID:  1,
		nextSchedID: 1,
	}
}

func (s *MemoryStorage) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextUserID
	s.nextUserID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *MemoryStorage) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := *u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) GetUserByID(id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, exists := s.users[id]; exists {
		user := *u
		return &user, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.users[user.ID]
	if !exists {
		return ErrNotFound
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *MemoryStorage) EmailExists(email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStorage) CreateSchedule(schedule *models.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedule.ID = s.nextSchedID
	s.nextSchedID++
	now := time.Now()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now
	if schedule.Status == "" {
		schedule.Status = "active"
	}

	stored := *schedule
	s.schedules[schedule.ID] = &stored
	return nil
}

func (s *MemoryStorage) GetSchedule(userID, id int64) (*models.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sc, exists := s.schedules[id]; exists && sc.UserID == userID {
		schedule := *sc
		return &schedule, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) ListSchedules(userID int64) ([]models.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Schedule
	for _, sc := range s.schedules {
		if sc.UserID == userID {
			result = append(result, *sc)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (s *MemoryStorage) ListSchedulesInRange(userID int64, from, to time.Time) ([]models.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Schedule
	for _, sc := range s.schedules {
		if sc.UserID != userID {
			continue
		}
		if sc.StartTime.Before(from) || !sc.StartTime.Before(to) {
			continue
		}
		result = append(result, *sc)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (s *MemoryStorage) UpdateSchedule(schedule *models.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.schedules[schedule.ID]
	if !exists || existing.UserID != schedule.UserID {
		return ErrNotFound
	}

	schedule.CreatedAt = existing.CreatedAt
	schedule.UpdatedAt = time.Now()
	stored := *schedule
	s.schedules[schedule.ID] = &stored
	return nil
}

func (s *MemoryStorage) DeleteSchedule(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sc, exists := s.schedules[id]; exists && sc.UserID == userID {
		delete(s.schedules, id)
		return nil
	}
	return ErrNotFound
}

func (s *MemoryStorage) SaveInteraction(interaction *models.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now()
	}
	stored := *interaction
	s.interactions = append(s.interactions, &stored)
	return nil
}

// ListInteractions returns the most recent interactions, newest first.
func (s *MemoryStorage) ListInteractions(userID int64, limit int) ([]models.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Interaction
	for i := len(s.interactions) - 1; i >= 0; i-- {
		if s.interactions[i].UserID != userID {
			continue
		}
		result = append(result, *s.interactions[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
