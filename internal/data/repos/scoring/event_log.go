package scoring

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openjam/jam-backend/internal/domain"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

type EventLogRepo interface {
	Append(ctx context.Context, tx *gorm.DB, row *types.EventLogEntry) error
	GetByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EventLogEntry, error)
	GetByTeamID(ctx context.Context, tx *gorm.DB, teamID uuid.UUID) ([]*types.EventLogEntry, error)
}

type eventLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventLogRepo(db *gorm.DB, baseLog *logger.Logger) EventLogRepo {
	repoLog := baseLog.With("repo", "EventLogRepo")
	return &eventLogRepo{db: db, log: repoLog}
}

func (r *eventLogRepo) Append(ctx context.Context, tx *gorm.DB, row *types.EventLogEntry) error {
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

func (r *eventLogRepo) GetByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EventLogEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EventLogEntry
	if eventID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *eventLogRepo) GetByTeamID(ctx context.Context, tx *gorm.DB, teamID uuid.UUID) ([]*types.EventLogEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EventLogEntry
	if teamID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
