package scoring

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openjam/jam-backend/internal/domain"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

type LeaderboardEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.LeaderboardEntry) ([]*types.LeaderboardEntry, error)
	GetByEventAndTeam(ctx context.Context, tx *gorm.DB, eventID, teamID uuid.UUID) (*types.LeaderboardEntry, error)
	// ListByEventID returns entries ordered by score descending, then team id
	// for a stable order among ties.
	ListByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.LeaderboardEntry, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.LeaderboardEntry) error
}

type leaderboardEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeaderboardEntryRepo(db *gorm.DB, baseLog *logger.Logger) LeaderboardEntryRepo {
	repoLog := baseLog.With("repo", "LeaderboardEntryRepo")
	return &leaderboardEntryRepo{db: db, log: repoLog}
}

func (r *leaderboardEntryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.LeaderboardEntry) ([]*types.LeaderboardEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.LeaderboardEntry{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *leaderboardEntryRepo) GetByEventAndTeam(ctx context.Context, tx *gorm.DB, eventID, teamID uuid.UUID) (*types.LeaderboardEntry, error) {
	if eventID == uuid.Nil || teamID == uuid.Nil {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.LeaderboardEntry
	if err := transaction.WithContext(ctx).
		Where("event_id = ? AND team_id = ?", eventID, teamID).
		First(&out).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *leaderboardEntryRepo) ListByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.LeaderboardEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LeaderboardEntry
	if eventID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("score DESC").
		Order("team_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *leaderboardEntryRepo) Update(ctx context.Context, tx *gorm.DB, row *types.LeaderboardEntry) error {
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

type LeaderboardHistoryRepo interface {
	Append(ctx context.Context, tx *gorm.DB, row *types.LeaderboardEntryHistory) error
	GetByEventAndTeam(ctx context.Context, tx *gorm.DB, eventID, teamID uuid.UUID) ([]*types.LeaderboardEntryHistory, error)
}

type leaderboardHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeaderboardHistoryRepo(db *gorm.DB, baseLog *logger.Logger) LeaderboardHistoryRepo {
	repoLog := baseLog.With("repo", "LeaderboardHistoryRepo")
	return &leaderboardHistoryRepo{db: db, log: repoLog}
}

func (r *leaderboardHistoryRepo) Append(ctx context.Context, tx *gorm.DB, row *types.LeaderboardEntryHistory) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	return nil
}

func (r *leaderboardHistoryRepo) GetByEventAndTeam(ctx context.Context, tx *gorm.DB, eventID, teamID uuid.UUID) ([]*types.LeaderboardEntryHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LeaderboardEntryHistory
	if eventID == uuid.Nil || teamID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("event_id = ? AND team_id = ?", eventID, teamID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
