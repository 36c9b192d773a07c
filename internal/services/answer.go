package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
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

type SubmitAnswerInput struct {
	EventID     uuid.UUID
	TeamID      uuid.UUID
	ChallengeID uuid.UUID
	TaskID      uuid.UUID
	Answer      string
}

// AnswerResult distinguishes processing failures (Success false) from the
// verdict on a processed submission (Correct). An incorrect answer is a
// normal outcome: Success true, Correct false.
type AnswerResult struct {
	Success bool   `json:"success"`
	Correct bool   `json:"correct"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Score   *int   `json:"score,omitempty"`
}

type AnswerService interface {
	SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*AnswerResult, error)
}

type answerService struct {
	log     *logger.Logger
	locker  lock.Locker
	runner  *jamdb.TxRunner
	metrics *observability.Metrics

	taskProgress repos.TaskProgressRepo
	teamAnswers  repos.TeamChallengeAnswerRepo
	challenges   repos.ChallengeRepo
	tasks        repos.TaskScoringRepo
	answers      repos.AnswerRepo
	leaderboard  repos.LeaderboardEntryRepo
	history      repos.LeaderboardHistoryRepo
	stats        repos.ChallengeStatisticsRepo
	eventLog     repos.EventLogRepo
}

func NewAnswerService(
	baseLog *logger.Logger,
	locker lock.Locker,
	runner *jamdb.TxRunner,
	metrics *observability.Metrics,
	taskProgress repos.TaskProgressRepo,
	teamAnswers repos.TeamChallengeAnswerRepo,
	challenges repos.ChallengeRepo,
	tasks repos.TaskScoringRepo,
	answers repos.AnswerRepo,
	leaderboard repos.LeaderboardEntryRepo,
	history repos.LeaderboardHistoryRepo,
	stats repos.ChallengeStatisticsRepo,
	eventLog repos.EventLogRepo,
) AnswerService {
	return &answerService{
		log:          baseLog.With("service", "AnswerService"),
		locker:       locker,
		runner:       runner,
		metrics:      metrics,
		taskProgress: taskProgress,
		teamAnswers:  teamAnswers,
		challenges:   challenges,
		tasks:        tasks,
		answers:      answers,
		leaderboard:  leaderboard,
		history:      history,
		stats:        stats,
		eventLog:     eventLog,
	}
}

// SubmitAnswer validates a submission against the stored answer key and, when
// correct, completes the task, cascades challenge completion and updates the
// leaderboard, all inside the team+challenge lock and one serializable
// transaction. A lock failure short-circuits without touching the datastore.
func (s *answerService) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*AnswerResult, error) {
	ctx, span := startSpan(ctx, "scoring.submit_answer", in.TeamID, in.ChallengeID)
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.ObserveOpDuration("submit_answer", time.Since(start).Seconds())
	}()

	var res *AnswerResult
	err := s.locker.WithLock(ctx, lock.Key(in.TeamID, in.ChallengeID), func() error {
		return s.runner.Serializable(ctx, func(tx *gorm.DB) error {
			r, err := s.submitAnswerTx(ctx, tx, in)
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
			s.metrics.ObserveSubmission("lock_failed")
			return &AnswerResult{Success: false, Correct: false, Code: CodeLockUnavailable, Message: err.Error()}, nil
		}
		span.RecordError(err)
		s.metrics.ObserveSubmission("failed")
		return nil, err
	}

	switch {
	case !res.Success:
		s.metrics.ObserveSubmission("rejected")
	case res.Correct:
		s.metrics.ObserveSubmission("correct")
	default:
		s.metrics.ObserveSubmission("incorrect")
	}
	return res, nil
}

func (s *answerService) submitAnswerTx(ctx context.Context, tx *gorm.DB, in SubmitAnswerInput) (*AnswerResult, error) {
	teamAnswer, err := s.teamAnswers.GetByTeamAndChallenge(ctx, tx, in.TeamID, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	if teamAnswer == nil {
		return &AnswerResult{Success: false, Code: CodeChallengeAnswerNotFound, Message: "Challenge answer not found"}, nil
	}

	progress, err := s.taskProgress.GetByTeamAndTask(ctx, tx, in.TeamID, in.TaskID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return &AnswerResult{Success: false, Code: CodeTaskProgressNotFound, Message: "Task progress not found"}, nil
	}
	if progress.Locked || progress.Completed {
		return &AnswerResult{Success: true, Correct: false, Message: "Task is not available for submission"}, nil
	}

	challenge, err := s.challenges.GetByID(ctx, tx, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	if challenge == nil || challenge.EventID != in.EventID {
		return &AnswerResult{Success: true, Correct: false, Message: "Challenge not found"}, nil
	}

	answerKey, err := s.answers.GetByChallengeAndTask(ctx, tx, in.ChallengeID, in.TaskID)
	if err != nil {
		return nil, err
	}
	if answerKey == nil {
		return &AnswerResult{Success: true, Correct: false, Message: "Answer not found"}, nil
	}

	// case-insensitive comparison, no whitespace trimming
	if !strings.EqualFold(in.Answer, answerKey.AnswerKey) {
		return &AnswerResult{Success: true, Correct: false, Message: "Incorrect answer"}, nil
	}

	progress.Completed = true
	if err := s.taskProgress.Update(ctx, tx, progress); err != nil {
		return nil, err
	}

	delta := progress.PointsEarned
	teamAnswer.Score += delta

	challengeTasks, err := s.tasks.GetByChallengeID(ctx, tx, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	if err := s.unlockNextTask(ctx, tx, in.TeamID, in.TaskID, challengeTasks); err != nil {
		return nil, err
	}

	challengeCompleted := isLastTask(in.TaskID, challengeTasks)
	if challengeCompleted {
		teamAnswer.Completed = true
	}
	if err := s.teamAnswers.Update(ctx, tx, teamAnswer); err != nil {
		return nil, err
	}

	score, err := s.creditLeaderboard(ctx, tx, in, delta)
	if err != nil {
		return nil, err
	}

	if err := s.bumpStatistics(ctx, tx, in.ChallengeID, challengeCompleted); err != nil {
		return nil, err
	}

	if err := s.appendEvents(ctx, tx, in, delta, score, challengeCompleted); err != nil {
		return nil, err
	}

	return &AnswerResult{
		Success: true,
		Correct: true,
		Message: "Answer correct!",
		Score:   &teamAnswer.Score,
	}, nil
}

// isLastTask reports whether taskID carries the highest task number of the
// challenge. Tasks unlock in ascending order, so completing the final task
// implies every other task is already complete.
func isLastTask(taskID uuid.UUID, challengeTasks []*types.TaskScoring) bool {
	if len(challengeTasks) == 0 {
		return false
	}
	return challengeTasks[len(challengeTasks)-1].ID == taskID
}

func (s *answerService) unlockNextTask(ctx context.Context, tx *gorm.DB, teamID, taskID uuid.UUID, challengeTasks []*types.TaskScoring) error {
	var next *types.TaskScoring
	for i, task := range challengeTasks {
		if task.ID == taskID && i+1 < len(challengeTasks) {
			next = challengeTasks[i+1]
			break
		}
	}
	if next == nil {
		return nil
	}

	nextProgress, err := s.taskProgress.GetByTeamAndTask(ctx, tx, teamID, next.ID)
	if err != nil {
		return err
	}
	if nextProgress == nil || !nextProgress.Locked {
		return nil
	}
	nextProgress.Locked = false
	return s.taskProgress.Update(ctx, tx, nextProgress)
}

func (s *answerService) creditLeaderboard(ctx context.Context, tx *gorm.DB, in SubmitAnswerInput, delta int) (int, error) {
	entry, err := s.leaderboard.GetByEventAndTeam(ctx, tx, in.EventID, in.TeamID)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		entry = &types.LeaderboardEntry{
			ID:      uuid.New(),
			EventID: in.EventID,
			TeamID:  in.TeamID,
			Score:   delta,
		}
		if _, err := s.leaderboard.Create(ctx, tx, []*types.LeaderboardEntry{entry}); err != nil {
			return 0, err
		}
	} else {
		entry.Score += delta
		if err := s.leaderboard.Update(ctx, tx, entry); err != nil {
			return 0, err
		}
	}

	if err := s.history.Append(ctx, tx, &types.LeaderboardEntryHistory{
		ID:          uuid.New(),
		EventID:     in.EventID,
		TeamID:      in.TeamID,
		ChallengeID: in.ChallengeID,
		TaskID:      in.TaskID,
		Delta:       delta,
		Score:       entry.Score,
	}); err != nil {
		return 0, err
	}
	return entry.Score, nil
}

func (s *answerService) bumpStatistics(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID, challengeCompleted bool) error {
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
	row.TasksCompleted++
	if challengeCompleted {
		row.TeamsCompleted++
	}
	return s.stats.Update(ctx, tx, row)
}

func (s *answerService) appendEvents(ctx context.Context, tx *gorm.DB, in SubmitAnswerInput, delta, score int, challengeCompleted bool) error {
	details, err := json.Marshal(map[string]interface{}{
		"challenge_id": in.ChallengeID,
		"task_id":      in.TaskID,
		"points":       delta,
		"total_score":  score,
	})
	if err != nil {
		return err
	}
	if err := s.eventLog.Append(ctx, tx, &types.EventLogEntry{
		ID:      uuid.New(),
		EventID: in.EventID,
		TeamID:  in.TeamID,
		Type:    types.EventAnswerCorrect,
		Details: datatypes.JSON(details),
	}); err != nil {
		return err
	}

	if !challengeCompleted {
		return nil
	}
	completedDetails, err := json.Marshal(map[string]interface{}{
		"challenge_id": in.ChallengeID,
	})
	if err != nil {
		return err
	}
	return s.eventLog.Append(ctx, tx, &types.EventLogEntry{
		ID:      uuid.New(),
		EventID: in.EventID,
		TeamID:  in.TeamID,
		Type:    types.EventChallengeCompleted,
		Details: datatypes.JSON(completedDetails),
	})
}
