package scoring

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openjam/jam-backend/internal/domain"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

type TeamChallengeAnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.TeamChallengeAnswer) ([]*types.TeamChallengeAnswer, error)
	GetByTeamAndChallenge(ctx context.Context, tx *gorm.DB, teamID, challengeID uuid.UUID) (*types.TeamChallengeAnswer, error)
	GetByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.TeamChallengeAnswer, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.TeamChallengeAnswer) error
}

type teamChallengeAnswerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeamChallengeAnswerRepo(db *gorm.DB, baseLog *logger.Logger) TeamChallengeAnswerRepo {
	repoLog := baseLog.With("repo", "TeamChallengeAnswerRepo")
	return &teamChallengeAnswerRepo{db: db, log: repoLog}
}

func (r *teamChallengeAnswerRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.TeamChallengeAnswer) ([]*types.TeamChallengeAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.TeamChallengeAnswer{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *teamChallengeAnswerRepo) GetByTeamAndChallenge(ctx context.Context, tx *gorm.DB, teamID, challengeID uuid.UUID) (*types.TeamChallengeAnswer, error) {
	if teamID == uuid.Nil || challengeID == uuid.Nil {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.TeamChallengeAnswer
	if err := transaction.WithContext(ctx).
		Where("team_id = ? AND challenge_id = ?", teamID, challengeID).
		First(&out).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *teamChallengeAnswerRepo) GetByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.TeamChallengeAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TeamChallengeAnswer
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

func (r *teamChallengeAnswerRepo) Update(ctx context.Context, tx *gorm.DB, row *types.TeamChallengeAnswer) error {
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
