package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	jamdb "github.com/openjam/jam-backend/internal/data/db"
	"github.com/openjam/jam-backend/internal/data/repos"
	"github.com/openjam/jam-backend/internal/data/repos/testutil"
	"github.com/openjam/jam-backend/internal/observability"
	"github.com/openjam/jam-backend/internal/platform/lock"
)

// scoringEnv wires every scoring service over the shared test database.
// Services run their own transactions, so tests isolate by fresh uuids
// per fixture rather than by rollback.
type scoringEnv struct {
	db     *gorm.DB
	locker lock.Locker

	challenges  ChallengeService
	answers     AnswerService
	clues       ClueService
	leaderboard LeaderboardService

	taskProgress repos.TaskProgressRepo
	teamAnswers  repos.TeamChallengeAnswerRepo
	stats        repos.ChallengeStatisticsRepo
	entries      repos.LeaderboardEntryRepo
	history      repos.LeaderboardHistoryRepo
	eventLog     repos.EventLogRepo
}

func newScoringEnv(t *testing.T, locker lock.Locker) *scoringEnv {
	t.Helper()

	db := testutil.DB(t)
	logg := testutil.Logger(t)
	metrics := observability.NewMetrics()
	runner := jamdb.NewTxRunner(db, logg, jamdb.WithMetrics(metrics))

	if locker == nil {
		locker = lock.NewMemoryLocker(2 * time.Second)
	}

	teamRepo := repos.NewTeamRepo(db, logg)
	challengeRepo := repos.NewChallengeRepo(db, logg)
	taskRepo := repos.NewTaskScoringRepo(db, logg)
	clueRepo := repos.NewClueRepo(db, logg)
	answerRepo := repos.NewAnswerRepo(db, logg)
	progressRepo := repos.NewTaskProgressRepo(db, logg)
	teamAnswerRepo := repos.NewTeamChallengeAnswerRepo(db, logg)
	statsRepo := repos.NewChallengeStatisticsRepo(db, logg)
	entryRepo := repos.NewLeaderboardEntryRepo(db, logg)
	historyRepo := repos.NewLeaderboardHistoryRepo(db, logg)
	eventLogRepo := repos.NewEventLogRepo(db, logg)

	return &scoringEnv{
		db:           db,
		locker:       locker,
		challenges:   NewChallengeService(logg, locker, runner, metrics, challengeRepo, taskRepo, progressRepo, teamAnswerRepo, statsRepo, eventLogRepo),
		answers:      NewAnswerService(logg, locker, runner, metrics, progressRepo, teamAnswerRepo, challengeRepo, taskRepo, answerRepo, entryRepo, historyRepo, statsRepo, eventLogRepo),
		clues:        NewClueService(logg, locker, runner, metrics, progressRepo, teamAnswerRepo, taskRepo, clueRepo, statsRepo, eventLogRepo),
		leaderboard:  NewLeaderboardService(logg, metrics, entryRepo, teamRepo),
		taskProgress: progressRepo,
		teamAnswers:  teamAnswerRepo,
		stats:        statsRepo,
		entries:      entryRepo,
		history:      historyRepo,
		eventLog:     eventLogRepo,
	}
}

// startFixtureChallenge seeds a two-task challenge and starts it for the
// fixture team.
func startFixtureChallenge(t *testing.T, env *scoringEnv) *testutil.ChallengeFixture {
	t.Helper()
	ctx := context.Background()

	fx := testutil.SeedTwoTaskChallenge(t, ctx, env.db)
	res, err := env.challenges.StartChallenge(ctx, StartChallengeInput{
		EventID:     fx.Event.ID,
		TeamID:      fx.Team.ID,
		ChallengeID: fx.Challenge.ID,
	})
	if err != nil {
		t.Fatalf("StartChallenge: %v", err)
	}
	if !res.Success {
		t.Fatalf("StartChallenge rejected: %s %s", res.Code, res.Message)
	}
	return fx
}
