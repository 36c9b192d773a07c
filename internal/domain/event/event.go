package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a timed competition window containing challenges.
type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	StartsAt  time.Time `gorm:"column:starts_at" json:"starts_at"`
	EndsAt    time.Time `gorm:"column:ends_at" json:"ends_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Event) TableName() string { return "event" }
