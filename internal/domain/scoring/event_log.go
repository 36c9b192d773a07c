package scoring

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EventClueOpened         = "CLUE_OPENED"
	EventAnswerCorrect      = "ANSWER_CORRECT"
	EventChallengeStarted   = "CHALLENGE_STARTED"
	EventChallengeCompleted = "CHALLENGE_COMPLETED"
)

// EventLogEntry is an append-only record of a domain event, kept for audit
// and statistics. Rows are never mutated after insert.
type EventLogEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_event_log_event" json:"event_id"`
	TeamID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_event_log_team" json:"team_id"`
	Type      string         `gorm:"column:type;not null" json:"type"`
	Details   datatypes.JSON `gorm:"column:details;type:jsonb" json:"details,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (EventLogEntry) TableName() string { return "event_log" }
