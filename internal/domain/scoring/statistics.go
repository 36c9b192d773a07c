package scoring

import (
	"time"

	"github.com/google/uuid"
)

// ChallengeStatistics aggregates per-challenge counters across all teams.
// Updated inside the same transaction as the state change it reflects.
type ChallengeStatistics struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChallengeID        uuid.UUID `gorm:"type:uuid;not null;index:idx_challenge_statistics_challenge,unique" json:"challenge_id"`
	CluesOpened        int       `gorm:"column:clues_opened;not null" json:"clues_opened"`
	PenaltyPointsTotal int       `gorm:"column:penalty_points_total;not null" json:"penalty_points_total"`
	TasksCompleted     int       `gorm:"column:tasks_completed;not null" json:"tasks_completed"`
	TeamsStarted       int       `gorm:"column:teams_started;not null" json:"teams_started"`
	TeamsCompleted     int       `gorm:"column:teams_completed;not null" json:"teams_completed"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null" json:"updated_at"`
}

func (ChallengeStatistics) TableName() string { return "challenge_statistics" }
