package scoring

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UsedClue is one entry of TaskProgress.UsedClues. The list is append-only
// and ordered by strictly increasing Order.
type UsedClue struct {
	Order       int    `json:"order"`
	Description string `json:"description"`
	Penalty     int    `json:"penalty"`
}

// TaskProgress tracks one team's state on one task. Rows are created when the
// team starts the challenge and are only mutated inside a transaction guarded
// by the team+challenge lock.
type TaskProgress struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_task_progress_team_task,unique,priority:1" json:"team_id"`
	TaskID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_task_progress_team_task,unique,priority:2" json:"task_id"`
	ChallengeID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_task_progress_challenge" json:"challenge_id"`
	PointsPossible int            `gorm:"column:points_possible;not null" json:"points_possible"`
	PointsEarned   int            `gorm:"column:points_earned;not null" json:"points_earned"`
	UsedClues      datatypes.JSON `gorm:"column:used_clues;type:jsonb" json:"used_clues"`
	Locked         bool           `gorm:"column:locked;not null" json:"locked"`
	Completed      bool           `gorm:"column:completed;not null" json:"completed"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (TaskProgress) TableName() string { return "task_progress" }

// DecodeUsedClues returns the used-clue list; an empty column decodes to nil.
func (p *TaskProgress) DecodeUsedClues() ([]UsedClue, error) {
	if len(p.UsedClues) == 0 {
		return nil, nil
	}
	var clues []UsedClue
	if err := json.Unmarshal(p.UsedClues, &clues); err != nil {
		return nil, err
	}
	return clues, nil
}

// EncodeUsedClues replaces the stored used-clue list.
func (p *TaskProgress) EncodeUsedClues(clues []UsedClue) error {
	raw, err := json.Marshal(clues)
	if err != nil {
		return err
	}
	p.UsedClues = datatypes.JSON(raw)
	return nil
}
