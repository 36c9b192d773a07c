package event

import (
	"time"

	"github.com/google/uuid"
)

// Challenge binds a problem definition to an event.
type Challenge struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID    uuid.UUID `gorm:"type:uuid;not null;index:idx_challenge_event" json:"event_id"`
	Event      *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`
	ProblemKey string    `gorm:"column:problem_key;not null" json:"problem_key"`
	Title      string    `gorm:"column:title;not null" json:"title"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Challenge) TableName() string { return "challenge" }

// TaskScoring is the static scoring definition of one task inside a challenge.
// TaskNumber orders tasks within the challenge; the task with the highest
// number is the challenge's final task.
type TaskScoring struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ChallengeID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_task_scoring_challenge_number,unique,priority:1" json:"challenge_id"`
	Challenge          *Challenge `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChallengeID;references:ID" json:"challenge,omitempty"`
	TaskNumber         int        `gorm:"column:task_number;not null;index:idx_task_scoring_challenge_number,unique,priority:2" json:"task_number"`
	Title              string     `gorm:"column:title;not null" json:"title"`
	PointsPossible     int        `gorm:"column:points_possible;not null" json:"points_possible"`
	Clue1PenaltyPoints int        `gorm:"column:clue1_penalty_points;not null" json:"clue1_penalty_points"`
	Clue2PenaltyPoints int        `gorm:"column:clue2_penalty_points;not null" json:"clue2_penalty_points"`
	Clue3PenaltyPoints int        `gorm:"column:clue3_penalty_points;not null" json:"clue3_penalty_points"`
	CreatedAt          time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null" json:"updated_at"`
}

func (TaskScoring) TableName() string { return "task_scoring" }

// CluePenalty maps a reveal order (1..3) onto the configured penalty.
func (t *TaskScoring) CluePenalty(order int) int {
	switch order {
	case 1:
		return t.Clue1PenaltyPoints
	case 2:
		return t.Clue2PenaltyPoints
	case 3:
		return t.Clue3PenaltyPoints
	default:
		return 0
	}
}
