package event

import (
	"time"

	"github.com/google/uuid"
)

// Clue is the static definition of a progressively revealable hint.
// Order is the reveal sequence within the task, starting at 1.
type Clue struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_clue_task_order,unique,priority:1" json:"task_id"`
	Task        *TaskScoring `gorm:"constraint:OnDelete:CASCADE;foreignKey:TaskID;references:ID" json:"task,omitempty"`
	Order       int          `gorm:"column:clue_order;not null;index:idx_clue_task_order,unique,priority:2" json:"order"`
	Description string       `gorm:"column:description;type:text;not null" json:"description"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

func (Clue) TableName() string { return "clue" }

// Answer holds the expected answer key for one task of a challenge.
// Submissions are compared case-insensitively against AnswerKey.
type Answer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChallengeID uuid.UUID `gorm:"type:uuid;not null;index:idx_answer_challenge_task,unique,priority:1" json:"challenge_id"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index:idx_answer_challenge_task,unique,priority:2" json:"task_id"`
	AnswerKey   string    `gorm:"column:answer_key;not null" json:"-"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Answer) TableName() string { return "answer" }

// Team is a participating group of players registered for an event.
type Team struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index:idx_team_event" json:"event_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Team) TableName() string { return "team" }
