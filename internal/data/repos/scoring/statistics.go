package scoring

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openjam/jam-backend/internal/domain"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

type ChallengeStatisticsRepo interface {
	GetByChallengeID(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) (*types.ChallengeStatistics, error)
	Create(ctx context.Context, tx *gorm.DB, row *types.ChallengeStatistics) (*types.ChallengeStatistics, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.ChallengeStatistics) error
}

type challengeStatisticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeStatisticsRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeStatisticsRepo {
	repoLog := baseLog.With("repo", "ChallengeStatisticsRepo")
	return &challengeStatisticsRepo{db: db, log: repoLog}
}

func (r *challengeStatisticsRepo) GetByChallengeID(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) (*types.ChallengeStatistics, error) {
	if challengeID == uuid.Nil {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.ChallengeStatistics
	if err := transaction.WithContext(ctx).
		Where("challenge_id = ?", challengeID).
		First(&out).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *challengeStatisticsRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ChallengeStatistics) (*types.ChallengeStatistics, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *challengeStatisticsRepo) Update(ctx context.Context, tx *gorm.DB, row *types.ChallengeStatistics) error {
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
