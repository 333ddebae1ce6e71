package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Description  string       `gorm:"type:text" json:"description"`
	Alternatives Alternatives `gorm:"type:jsonb;not null;default:'[]'" json:"alternatives"`
	SubjectIDs   IDList       `gorm:"column:subjects;type:jsonb;not null;default:'[]'" json:"subjects"`
	// TestTitle links the question to a Test by the test's title, not its id.
	TestTitle string    `gorm:"column:test;index" json:"test,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssignID gives the question a fresh identifier unless one was set by the caller.
func (q *Question) AssignID() {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	q.AssignID()
	return nil
}
