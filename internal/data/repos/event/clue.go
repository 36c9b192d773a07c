package event

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openjam/jam-backend/internal/domain"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

type ClueRepo interface {
	Create(ctx context.Context, tx *gorm.DB, clues []*types.Clue) ([]*types.Clue, error)
	GetByTaskAndOrder(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, order int) (*types.Clue, error)
	GetByTaskID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) ([]*types.Clue, error)
}

type clueRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClueRepo(db *gorm.DB, baseLog *logger.Logger) ClueRepo {
	repoLog := baseLog.With("repo", "ClueRepo")
	return &clueRepo{db: db, log: repoLog}
}

func (r *clueRepo) Create(ctx context.Context, tx *gorm.DB, clues []*types.Clue) ([]*types.Clue, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(clues) == 0 {
		return []*types.Clue{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&clues).Error; err != nil {
		return nil, err
	}
	return clues, nil
}

func (r *clueRepo) GetByTaskAndOrder(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, order int) (*types.Clue, error) {
	if taskID == uuid.Nil || order < 0 {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.Clue
	if err := transaction.WithContext(ctx).
		Where("task_id = ? AND clue_order = ?", taskID, order).
		First(&out).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *clueRepo) GetByTaskID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) ([]*types.Clue, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Clue
	if taskID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("clue_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
