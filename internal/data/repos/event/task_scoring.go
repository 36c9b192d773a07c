package event

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openjam/jam-backend/internal/domain"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

type TaskScoringRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.TaskScoring) ([]*types.TaskScoring, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TaskScoring, error)
	// GetByChallengeID returns the challenge's tasks in ascending TaskNumber
	// order. Callers must not rely on any other ordering.
	GetByChallengeID(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) ([]*types.TaskScoring, error)
}

type taskScoringRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskScoringRepo(db *gorm.DB, baseLog *logger.Logger) TaskScoringRepo {
	repoLog := baseLog.With("repo", "TaskScoringRepo")
	return &taskScoringRepo{db: db, log: repoLog}
}

func (r *taskScoringRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.TaskScoring) ([]*types.TaskScoring, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(tasks) == 0 {
		return []*types.TaskScoring{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskScoringRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TaskScoring, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.TaskScoring
	if err := transaction.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *taskScoringRepo) GetByChallengeID(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) ([]*types.TaskScoring, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TaskScoring
	if challengeID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("challenge_id = ?", challengeID).
		Order("task_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
