package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	jamdb "github.com/openjam/jam-backend/internal/data/db"
	"github.com/openjam/jam-backend/internal/data/repos"
	types "github.com/openjam/jam-backend/internal/domain"
	"github.com/openjam/jam-backend/internal/observability"
	"github.com/openjam/jam-backend/internal/platform/lock"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

type StartChallengeInput struct {
	EventID     uuid.UUID
	TeamID      uuid.UUID
	ChallengeID uuid.UUID
}

type StartChallengeResult struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type ChallengeService interface {
	StartChallenge(ctx context.Context, in StartChallengeInput) (*StartChallengeResult, error)
}

type challengeService struct {
	log     *logger.Logger
	locker  lock.Locker
	runner  *jamdb.TxRunner
	metrics *observability.Metrics

	challenges   repos.ChallengeRepo
	tasks        repos.TaskScoringRepo
	taskProgress repos.TaskProgressRepo
	teamAnswers  repos.TeamChallengeAnswerRepo
	stats        repos.ChallengeStatisticsRepo
	eventLog     repos.EventLogRepo
}

func NewChallengeService(
	baseLog *logger.Logger,
	locker lock.Locker,
	runner *jamdb.TxRunner,
	metrics *observability.Metrics,
	challenges repos.ChallengeRepo,
	tasks repos.TaskScoringRepo,
	taskProgress repos.TaskProgressRepo,
	teamAnswers repos.TeamChallengeAnswerRepo,
	stats repos.ChallengeStatisticsRepo,
	eventLog repos.EventLogRepo,
) ChallengeService {
	return &challengeService{
		log:          baseLog.With("service", "ChallengeService"),
		locker:       locker,
		runner:       runner,
		metrics:      metrics,
		challenges:   challenges,
		tasks:        tasks,
		taskProgress: taskProgress,
		teamAnswers:  teamAnswers,
		stats:        stats,
		eventLog:     eventLog,
	}
}

// StartChallenge opens a challenge for a team: it creates the team's answer
// row and one progress row per task, with only the first task unlocked.
// A second start for the same pair is rejected, never duplicated.
func (s *challengeService) StartChallenge(ctx context.Context, in StartChallengeInput) (*StartChallengeResult, error) {
	ctx, span := startSpan(ctx, "scoring.start_challenge", in.TeamID, in.ChallengeID)
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.ObserveOpDuration("start_challenge", time.Since(start).Seconds())
	}()

	var res *StartChallengeResult
	err := s.locker.WithLock(ctx, lock.Key(in.TeamID, in.ChallengeID), func() error {
		return s.runner.Serializable(ctx, func(tx *gorm.DB) error {
			r, err := s.startChallengeTx(ctx, tx, in)
			if err != nil {
				return err
			}
			res = r
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			s.metrics.IncLockFailure()
			return &StartChallengeResult{Success: false, Code: CodeLockUnavailable, Message: err.Error()}, nil
		}
		span.RecordError(err)
		return nil, err
	}
	return res, nil
}

func (s *challengeService) startChallengeTx(ctx context.Context, tx *gorm.DB, in StartChallengeInput) (*StartChallengeResult, error) {
	challenge, err := s.challenges.GetByID(ctx, tx, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	if challenge == nil || challenge.EventID != in.EventID {
		return &StartChallengeResult{Success: false, Code: CodeChallengeNotFound, Message: "Challenge not found"}, nil
	}

	existing, err := s.teamAnswers.GetByTeamAndChallenge(ctx, tx, in.TeamID, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &StartChallengeResult{Success: false, Code: CodeChallengeAlreadyStarted, Message: "Challenge already started"}, nil
	}

	challengeTasks, err := s.tasks.GetByChallengeID(ctx, tx, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	if len(challengeTasks) == 0 {
		return nil, fmt.Errorf("challenge %s has no tasks", in.ChallengeID)
	}

	if _, err := s.teamAnswers.Create(ctx, tx, []*types.TeamChallengeAnswer{{
		ID:          uuid.New(),
		EventID:     in.EventID,
		TeamID:      in.TeamID,
		ChallengeID: in.ChallengeID,
		Started:     true,
	}}); err != nil {
		return nil, err
	}

	progressRows := make([]*types.TaskProgress, 0, len(challengeTasks))
	for i, task := range challengeTasks {
		progressRows = append(progressRows, &types.TaskProgress{
			ID:             uuid.New(),
			TeamID:         in.TeamID,
			ChallengeID:    in.ChallengeID,
			TaskID:         task.ID,
			PointsPossible: task.PointsPossible,
			PointsEarned:   task.PointsPossible,
			UsedClues:      datatypes.JSON([]byte("[]")),
			Locked:         i != 0,
		})
	}
	if _, err := s.taskProgress.Create(ctx, tx, progressRows); err != nil {
		return nil, err
	}

	if err := s.bumpStarted(ctx, tx, in.ChallengeID); err != nil {
		return nil, err
	}

	details, err := json.Marshal(map[string]interface{}{
		"challenge_id": in.ChallengeID,
		"task_count":   len(challengeTasks),
	})
	if err != nil {
		return nil, err
	}
	if err := s.eventLog.Append(ctx, tx, &types.EventLogEntry{
		ID:      uuid.New(),
		EventID: in.EventID,
		TeamID:  in.TeamID,
		Type:    types.EventChallengeStarted,
		Details: datatypes.JSON(details),
	}); err != nil {
		return nil, err
	}

	return &StartChallengeResult{Success: true, Message: "Challenge started"}, nil
}

func (s *challengeService) bumpStarted(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) error {
	row, err := s.stats.GetByChallengeID(ctx, tx, challengeID)
	if err != nil {
		return err
	}
	if row == nil {
		row = &types.ChallengeStatistics{
			ID:          uuid.New(),
			ChallengeID: challengeID,
		}
		if _, err := s.stats.Create(ctx, tx, row); err != nil {
			return err
		}
	}
	row.TeamsStarted++
	return s.stats.Update(ctx, tx, row)
}
