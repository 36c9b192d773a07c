package scoring

import (
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry is the authoritative per-team aggregate score for an event.
// Rank is materialized at read time, not stored.
type LeaderboardEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leaderboard_event_team,unique,priority:1" json:"event_id"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;index:idx_leaderboard_event_team,unique,priority:2" json:"team_id"`
	Score     int       `gorm:"column:score;not null" json:"score"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (LeaderboardEntry) TableName() string { return "leaderboard_entry" }

// LeaderboardEntryHistory is an append-only audit trail of score deltas.
type LeaderboardEntryHistory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;index:idx_leaderboard_history_event" json:"event_id"`
	TeamID      uuid.UUID `gorm:"type:uuid;not null;index:idx_leaderboard_history_team" json:"team_id"`
	ChallengeID uuid.UUID `gorm:"type:uuid;not null" json:"challenge_id"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null" json:"task_id"`
	Delta       int       `gorm:"column:delta;not null" json:"delta"`
	Score       int       `gorm:"column:score;not null" json:"score"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (LeaderboardEntryHistory) TableName() string { return "leaderboard_entry_history" }
