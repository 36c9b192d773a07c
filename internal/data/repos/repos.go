package repos

import (
	"github.com/openjam/jam-backend/internal/data/repos/event"
	"github.com/openjam/jam-backend/internal/data/repos/scoring"
	"github.com/openjam/jam-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type EventRepo = event.EventRepo
type TeamRepo = event.TeamRepo
type ChallengeRepo = event.ChallengeRepo
type TaskScoringRepo = event.TaskScoringRepo
type ClueRepo = event.ClueRepo
type AnswerRepo = event.AnswerRepo

type TaskProgressRepo = scoring.TaskProgressRepo
type TeamChallengeAnswerRepo = scoring.TeamChallengeAnswerRepo
type ChallengeStatisticsRepo = scoring.ChallengeStatisticsRepo
type LeaderboardEntryRepo = scoring.LeaderboardEntryRepo
type LeaderboardHistoryRepo = scoring.LeaderboardHistoryRepo
type EventLogRepo = scoring.EventLogRepo

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return event.NewEventRepo(db, baseLog)
}
func NewTeamRepo(db *gorm.DB, baseLog *logger.Logger) TeamRepo {
	return event.NewTeamRepo(db, baseLog)
}
func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
	return event.NewChallengeRepo(db, baseLog)
}
func NewTaskScoringRepo(db *gorm.DB, baseLog *logger.Logger) TaskScoringRepo {
	return event.NewTaskScoringRepo(db, baseLog)
}
func NewClueRepo(db *gorm.DB, baseLog *logger.Logger) ClueRepo {
	return event.NewClueRepo(db, baseLog)
}
func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	return event.NewAnswerRepo(db, baseLog)
}

func NewTaskProgressRepo(db *gorm.DB, baseLog *logger.Logger) TaskProgressRepo {
	return scoring.NewTaskProgressRepo(db, baseLog)
}
func NewTeamChallengeAnswerRepo(db *gorm.DB, baseLog *logger.Logger) TeamChallengeAnswerRepo {
	return scoring.NewTeamChallengeAnswerRepo(db, baseLog)
}
func NewChallengeStatisticsRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeStatisticsRepo {
	return scoring.NewChallengeStatisticsRepo(db, baseLog)
}
func NewLeaderboardEntryRepo(db *gorm.DB, baseLog *logger.Logger) LeaderboardEntryRepo {
	return scoring.NewLeaderboardEntryRepo(db, baseLog)
}
func NewLeaderboardHistoryRepo(db *gorm.DB, baseLog *logger.Logger) LeaderboardHistoryRepo {
	return scoring.NewLeaderboardHistoryRepo(db, baseLog)
}
func NewEventLogRepo(db *gorm.DB, baseLog *logger.Logger) EventLogRepo {
	return scoring.NewEventLogRepo(db, baseLog)
}
