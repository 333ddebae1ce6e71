package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subject struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Subject) AssignID() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
}

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	s.AssignID()
	return nil
}
