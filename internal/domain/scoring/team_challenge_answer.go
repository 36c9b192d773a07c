package scoring

import (
	"time"

	"github.com/google/uuid"
)

// TeamChallengeAnswer is one team's engagement with one challenge.
// Completed flips to true exactly once, when the challenge's final task
// completes; Score is the sum of completed tasks' points earned and never
// decreases.
type TeamChallengeAnswer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID      uuid.UUID `gorm:"type:uuid;not null;index:idx_tca_team_challenge,unique,priority:1" json:"team_id"`
	ChallengeID uuid.UUID `gorm:"type:uuid;not null;index:idx_tca_team_challenge,unique,priority:2" json:"challenge_id"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;index:idx_tca_event" json:"event_id"`
	Started     bool      `gorm:"column:started;not null" json:"started"`
	Completed   bool      `gorm:"column:completed;not null" json:"completed"`
	Score       int       `gorm:"column:score;not null" json:"score"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (TeamChallengeAnswer) TableName() string { return "team_challenge_answer" }

// InProgress reports whether the challenge accepts scoring operations.
func (a *TeamChallengeAnswer) InProgress() bool {
	return a.Started && !a.Completed
}
