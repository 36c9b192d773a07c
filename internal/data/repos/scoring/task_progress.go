package scoring

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openjam/jam-backend/internal/domain"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

type TaskProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.TaskProgress) ([]*types.TaskProgress, error)
	GetByTeamAndTask(ctx context.Context, tx *gorm.DB, teamID, taskID uuid.UUID) (*types.TaskProgress, error)
	GetByTeamAndChallenge(ctx context.Context, tx *gorm.DB, teamID, challengeID uuid.UUID) ([]*types.TaskProgress, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.TaskProgress) error
}

type taskProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskProgressRepo(db *gorm.DB, baseLog *logger.Logger) TaskProgressRepo {
	repoLog := baseLog.With("repo", "TaskProgressRepo")
	return &taskProgressRepo{db: db, log: repoLog}
}

func (r *taskProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.TaskProgress) ([]*types.TaskProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.TaskProgress{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *taskProgressRepo) GetByTeamAndTask(ctx context.Context, tx *gorm.DB, teamID, taskID uuid.UUID) (*types.TaskProgress, error) {
	if teamID == uuid.Nil || taskID == uuid.Nil {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.TaskProgress
	if err := transaction.WithContext(ctx).
		Where("team_id = ? AND task_id = ?", teamID, taskID).
		First(&out).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *taskProgressRepo) GetByTeamAndChallenge(ctx context.Context, tx *gorm.DB, teamID, challengeID uuid.UUID) ([]*types.TaskProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TaskProgress
	if teamID == uuid.Nil || challengeID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("team_id = ? AND challenge_id = ?", teamID, challengeID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taskProgressRepo) Update(ctx context.Context, tx *gorm.DB, row *types.TaskProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
		return err
	}
	return nil
}
