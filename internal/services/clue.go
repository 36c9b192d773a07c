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

type OpenClueInput struct {
	EventID     uuid.UUID
	TeamID      uuid.UUID
	ChallengeID uuid.UUID
	TaskID      uuid.UUID
	ClueOrder   int
}

type OpenedClue struct {
	ID          uuid.UUID `json:"id"`
	Order       int       `json:"order"`
	Description string    `json:"description"`
}

// ClueResult is the workflow outcome. Success false with a Code is an
// expected precondition failure, never an error.
type ClueResult struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Clue    *OpenedClue `json:"clue,omitempty"`
}

type ClueService interface {
	OpenClue(ctx context.Context, in OpenClueInput) (*ClueResult, error)
}

type clueService struct {
	log     *logger.Logger
	locker  lock.Locker
	runner  *jamdb.TxRunner
	metrics *observability.Metrics

	taskProgress repos.TaskProgressRepo
	teamAnswers  repos.TeamChallengeAnswerRepo
	tasks        repos.TaskScoringRepo
	clues        repos.ClueRepo
	stats        repos.ChallengeStatisticsRepo
	eventLog     repos.EventLogRepo
}

func NewClueService(
	baseLog *logger.Logger,
	locker lock.Locker,
	runner *jamdb.TxRunner,
	metrics *observability.Metrics,
	taskProgress repos.TaskProgressRepo,
	teamAnswers repos.TeamChallengeAnswerRepo,
	tasks repos.TaskScoringRepo,
	clues repos.ClueRepo,
	stats repos.ChallengeStatisticsRepo,
	eventLog repos.EventLogRepo,
) ClueService {
	return &clueService{
		log:          baseLog.With("service", "ClueService"),
		locker:       locker,
		runner:       runner,
		metrics:      metrics,
		taskProgress: taskProgress,
		teamAnswers:  teamAnswers,
		tasks:        tasks,
		clues:        clues,
		stats:        stats,
		eventLog:     eventLog,
	}
}

// OpenClue reveals one clue for a team's task, applies its score penalty and
// records the reveal. The whole decision runs inside the team+challenge lock
// and one serializable transaction.
func (s *clueService) OpenClue(ctx context.Context, in OpenClueInput) (*ClueResult, error) {
	ctx, span := startSpan(ctx, "scoring.open_clue", in.TeamID, in.ChallengeID)
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.ObserveOpDuration("open_clue", time.Since(start).Seconds())
	}()

	var res *ClueResult
	err := s.locker.WithLock(ctx, lock.Key(in.TeamID, in.ChallengeID), func() error {
		return s.runner.Serializable(ctx, func(tx *gorm.DB) error {
			r, err := s.openClueTx(ctx, tx, in)
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
			s.metrics.ObserveClueOpen("lock_failed")
			return &ClueResult{Success: false, Code: CodeLockUnavailable, Message: err.Error()}, nil
		}
		span.RecordError(err)
		s.metrics.ObserveClueOpen("failed")
		return nil, err
	}

	if res.Success {
		s.metrics.ObserveClueOpen("opened")
	} else {
		s.metrics.ObserveClueOpen("rejected")
	}
	return res, nil
}

func (s *clueService) openClueTx(ctx context.Context, tx *gorm.DB, in OpenClueInput) (*ClueResult, error) {
	progress, err := s.taskProgress.GetByTeamAndTask(ctx, tx, in.TeamID, in.TaskID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return &ClueResult{Success: false, Code: CodeTaskProgressNotFound, Message: "Task progress not found"}, nil
	}

	teamAnswer, err := s.teamAnswers.GetByTeamAndChallenge(ctx, tx, in.TeamID, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	if teamAnswer == nil {
		return &ClueResult{Success: false, Code: CodeChallengeAnswerNotFound, Message: "Challenge answer not found"}, nil
	}

	usedClues, err := progress.DecodeUsedClues()
	if err != nil {
		return nil, fmt.Errorf("decode used clues: %w", err)
	}
	for _, used := range usedClues {
		if used.Order == in.ClueOrder {
			return &ClueResult{Success: false, Code: CodeClueAlreadyOpened, Message: "Clue already opened, reload the challenge"}, nil
		}
	}

	if !teamAnswer.InProgress() {
		return &ClueResult{Success: false, Code: CodeChallengeNotInProgress, Message: "Challenge is not in progress"}, nil
	}
	if progress.Completed {
		return &ClueResult{Success: false, Code: CodeTaskAlreadyCompleted, Message: "Task already completed"}, nil
	}

	clue, err := s.clues.GetByTaskAndOrder(ctx, tx, in.TaskID, in.ClueOrder)
	if err != nil {
		return nil, err
	}
	if clue == nil {
		return &ClueResult{Success: false, Code: CodeClueNotFound, Message: "Clue not found"}, nil
	}

	task, err := s.tasks.GetByID(ctx, tx, in.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		// progress exists but its task definition is gone: data corruption
		return nil, fmt.Errorf("task scoring %s not found for task progress %s", in.TaskID, progress.ID)
	}

	penalty := task.CluePenalty(in.ClueOrder)
	usedClues = append(usedClues, types.UsedClue{
		Order:       in.ClueOrder,
		Description: clue.Description,
		Penalty:     penalty,
	})
	if err := progress.EncodeUsedClues(usedClues); err != nil {
		return nil, fmt.Errorf("encode used clues: %w", err)
	}

	penalties := make([]int, 0, len(usedClues))
	for _, used := range usedClues {
		penalties = append(penalties, used.Penalty)
	}
	progress.PointsEarned = CalculatePointsEarned(progress.PointsPossible, penalties)

	if err := s.taskProgress.Update(ctx, tx, progress); err != nil {
		return nil, err
	}

	if err := s.bumpStatistics(ctx, tx, in.ChallengeID, penalty); err != nil {
		return nil, err
	}

	details, err := json.Marshal(map[string]interface{}{
		"challenge_id": in.ChallengeID,
		"task_id":      in.TaskID,
		"clue_order":   in.ClueOrder,
		"penalty":      penalty,
	})
	if err != nil {
		return nil, err
	}
	if err := s.eventLog.Append(ctx, tx, &types.EventLogEntry{
		ID:      uuid.New(),
		EventID: in.EventID,
		TeamID:  in.TeamID,
		Type:    types.EventClueOpened,
		Details: datatypes.JSON(details),
	}); err != nil {
		return nil, err
	}

	return &ClueResult{
		Success: true,
		Message: "Clue opened successfully",
		Clue: &OpenedClue{
			ID:          clue.ID,
			Order:       clue.Order,
			Description: clue.Description,
		},
	}, nil
}

func (s *clueService) bumpStatistics(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID, penalty int) error {
	row, err := s.stats.GetByChallengeID(ctx, tx, challengeID)
	if err != nil {
		return err
	}
	if row == nil {
		_, err := s.stats.Create(ctx, tx, &types.ChallengeStatistics{
			ID:                 uuid.New(),
			ChallengeID:        challengeID,
			CluesOpened:        1,
			PenaltyPointsTotal: penalty,
		})
		return err
	}
	row.CluesOpened++
	row.PenaltyPointsTotal += penalty
	return s.stats.Update(ctx, tx, row)
}
