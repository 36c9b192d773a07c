package event

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openjam/jam-backend/internal/domain"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

type AnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answers []*types.Answer) ([]*types.Answer, error)
	GetByChallengeAndTask(ctx context.Context, tx *gorm.DB, challengeID, taskID uuid.UUID) (*types.Answer, error)
}

type answerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	repoLog := baseLog.With("repo", "AnswerRepo")
	return &answerRepo{db: db, log: repoLog}
}

func (r *answerRepo) Create(ctx context.Context, tx *gorm.DB, answers []*types.Answer) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(answers) == 0 {
		return []*types.Answer{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepo) GetByChallengeAndTask(ctx context.Context, tx *gorm.DB, challengeID, taskID uuid.UUID) (*types.Answer, error) {
	if challengeID == uuid.Nil || taskID == uuid.Nil {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.Answer
	if err := transaction.WithContext(ctx).
		Where("challenge_id = ? AND task_id = ?", challengeID, taskID).
		First(&out).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
