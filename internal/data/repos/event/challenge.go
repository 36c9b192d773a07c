package event

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openjam/jam-backend/internal/domain"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

type ChallengeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, challenges []*types.Challenge) ([]*types.Challenge, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Challenge, error)
	GetByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.Challenge, error)
}

type challengeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
	repoLog := baseLog.With("repo", "ChallengeRepo")
	return &challengeRepo{db: db, log: repoLog}
}

func (r *challengeRepo) Create(ctx context.Context, tx *gorm.DB, challenges []*types.Challenge) ([]*types.Challenge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(challenges) == 0 {
		return []*types.Challenge{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *challengeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Challenge, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.Challenge
	if err := transaction.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *challengeRepo) GetByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.Challenge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Challenge
	if eventID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
