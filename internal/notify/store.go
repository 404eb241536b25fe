package notify

import (
	"gorm.io/gorm"

	"github.com/salonhub/salon-scheduler/internal/models"
)

// Store persists notifications so users can list and mark them read.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ev Event) error {
	n := models.Notification{
		UserID:        ev.UserID,
		AppointmentID: ev.AppointmentID,
		Type:          ev.Type,
		Message:       ev.Message,
	}

	return s.db.Create(&n).Error
}
