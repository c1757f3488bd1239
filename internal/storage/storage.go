package storage

import (
	"errors"
	"time"

	"github.com/quangtran/lichviet/internal/models"
)

// ErrNotFound is returned when a requested row does not exist or belongs to
// another user.
var ErrNotFound = errors.New("storage: not found")

type Storage interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	UpdateUser(user *models.User) error
	EmailExists(email string) (bool, error)

	CreateSchedule(schedule *models.Schedule) error
	GetSchedule(userID, id int64) (*models.Schedule, error)
	ListSchedules(userID int64) ([]models.Schedule, error)
	ListSchedulesInRange(userID int64, from, to time.Time) ([]models.Schedule, error)
	UpdateSchedule(schedule *models.Schedule) error
	DeleteSchedule(userID, id int64) error

	SaveInteraction(interaction *models.Interaction) error
	ListInteractions(userID int64, limit int) ([]models.Interaction, error)

	Close() error
}
