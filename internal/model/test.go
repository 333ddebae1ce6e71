package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Test struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	Passcode    string    `gorm:"not null;uniqueIndex" json:"passcode"`
	QuestionIDs IDList    `gorm:"column:questions;type:jsonb;not null;default:'[]'" json:"questions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t *Test) AssignID() {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	t.AssignID()
	return nil
}
