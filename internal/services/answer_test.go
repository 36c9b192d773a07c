package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openjam/jam-backend/internal/platform/lock"
)

func (env *scoringEnv) submit(t *testing.T, fx submitTarget, answer string) *AnswerResult {
	t.Helper()
	res, err := env.answers.SubmitAnswer(context.Background(), SubmitAnswerInput{
		EventID:     fx.eventID,
		TeamID:      fx.teamID,
		ChallengeID: fx.challengeID,
		TaskID:      fx.taskID,
		Answer:      answer,
	})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	return res
}

type submitTarget struct {
	eventID     uuid.UUID
	teamID      uuid.UUID
	challengeID uuid.UUID
	taskID      uuid.UUID
}

func TestSubmitAnswerIncorrect(t *testing.T) {
	env := newScoringEnv(t, nil)
	fx := startFixtureChallenge(t, env)

	res := env.submit(t, submitTarget{fx.Event.ID, fx.Team.ID, fx.Challenge.ID, fx.Tasks[0].ID}, "wrong")
	if !res.Success || res.Correct {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Message != "Incorrect answer" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	progress, err := env.taskProgress.GetByTeamAndTask(context.Background(), nil, fx.Team.ID, fx.Tasks[0].ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if progress.Completed {
		t.Fatal("incorrect answer completed the task")
	}
}

func TestSubmitAnswerCaseInsensitive(t *testing.T) {
	env := newScoringEnv(t, nil)
	fx := startFixtureChallenge(t, env)

	res := env.submit(t, submitTarget{fx.Event.ID, fx.Team.ID, fx.Challenge.ID, fx.Tasks[0].ID}, "ALPHA")
	if !res.Success || !res.Correct {
		t.Fatalf("case-insensitive match failed: %+v", res)
	}
}

func TestSubmitAnswerWhitespaceNotTrimmed(t *testing.T) {
	env := newScoringEnv(t, nil)
	fx := startFixtureChallenge(t, env)

	res := env.submit(t, submitTarget{fx.Event.ID, fx.Team.ID, fx.Challenge.ID, fx.Tasks[0].ID}, " alpha ")
	if !res.Success || res.Correct {
		t.Fatalf("padded answer accepted: %+v", res)
	}
}

func TestSubmitAnswerLockedTask(t *testing.T) {
	env := newScoringEnv(t, nil)
	fx := startFixtureChallenge(t, env)

	// the second task stays locked until the first completes
	res := env.submit(t, submitTarget{fx.Event.ID, fx.Team.ID, fx.Challenge.ID, fx.Tasks[1].ID}, "bravo")
	if !res.Success || res.Correct {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Message != "Task is not available for submission" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestSubmitAnswerWrongEvent(t *testing.T) {
	env := newScoringEnv(t, nil)
	fx := startFixtureChallenge(t, env)

	res := env.submit(t, submitTarget{uuid.New(), fx.Team.ID, fx.Challenge.ID, fx.Tasks[0].ID}, "alpha")
	if !res.Success || res.Correct || res.Message != "Challenge not found" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSubmitAnswerCompletionCascade(t *testing.T) {
	env := newScoringEnv(t, nil)
	ctx := context.Background()
	fx := startFixtureChallenge(t, env)
	target := submitTarget{fx.Event.ID, fx.Team.ID, fx.Challenge.ID, fx.Tasks[0].ID}

	// two clues on task 1: 100 - 10 - 20 = 70
	for order := 1; order <= 2; order++ {
		cr, err := env.clues.OpenClue(ctx, OpenClueInput{
			EventID:     fx.Event.ID,
			TeamID:      fx.Team.ID,
			ChallengeID: fx.Challenge.ID,
			TaskID:      fx.Tasks[0].ID,
			ClueOrder:   order,
		})
		if err != nil || !cr.Success {
			t.Fatalf("OpenClue(%d): res=%+v err=%v", order, cr, err)
		}
	}

	res := env.submit(t, target, "alpha")
	if !res.Success || !res.Correct {
		t.Fatalf("first answer rejected: %+v", res)
	}
	if res.Score == nil || *res.Score != 70 {
		t.Fatalf("score after task 1 = %v, want 70", res.Score)
	}

	next, err := env.taskProgress.GetByTeamAndTask(ctx, nil, fx.Team.ID, fx.Tasks[1].ID)
	if err != nil {
		t.Fatalf("get next progress: %v", err)
	}
	if next.Locked {
		t.Fatal("second task still locked after completing the first")
	}

	target.taskID = fx.Tasks[1].ID
	res = env.submit(t, target, "bravo")
	if !res.Success || !res.Correct {
		t.Fatalf("second answer rejected: %+v", res)
	}
	if res.Score == nil || *res.Score != 170 {
		t.Fatalf("score after task 2 = %v, want 170", res.Score)
	}

	teamAnswer, err := env.teamAnswers.GetByTeamAndChallenge(ctx, nil, fx.Team.ID, fx.Challenge.ID)
	if err != nil {
		t.Fatalf("get team answer: %v", err)
	}
	if !teamAnswer.Completed || teamAnswer.Score != 170 {
		t.Fatalf("unexpected team answer: %+v", teamAnswer)
	}

	entry, err := env.entries.GetByEventAndTeam(ctx, nil, fx.Event.ID, fx.Team.ID)
	if err != nil {
		t.Fatalf("get leaderboard entry: %v", err)
	}
	if entry == nil || entry.Score != 170 {
		t.Fatalf("unexpected leaderboard entry: %+v", entry)
	}

	history, err := env.history.GetByEventAndTeam(ctx, nil, fx.Event.ID, fx.Team.ID)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(history))
	}

	stats, err := env.stats.GetByChallengeID(ctx, nil, fx.Challenge.ID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.TasksCompleted != 2 || stats.TeamsCompleted != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// challenge closed: further submissions bounce
	res = env.submit(t, target, "bravo")
	if !res.Success || res.Correct || res.Message != "Task is not available for submission" {
		t.Fatalf("resubmission after completion: %+v", res)
	}
}

func TestSubmitAnswerLockUnavailable(t *testing.T) {
	env := newScoringEnv(t, lock.NewMemoryLocker(20*time.Millisecond))
	fx := startFixtureChallengeWithHeldLock(t, env)

	res := env.submit(t, submitTarget{fx.eventID, fx.teamID, fx.challengeID, fx.taskID}, "alpha")
	if res.Success || res.Code != CodeLockUnavailable {
		t.Fatalf("expected %s, got %+v", CodeLockUnavailable, res)
	}
}

// startFixtureChallengeWithHeldLock starts a challenge, then holds the
// team+challenge lock for the rest of the test.
func startFixtureChallengeWithHeldLock(t *testing.T, env *scoringEnv) submitTarget {
	t.Helper()

	fx := startFixtureChallenge(t, env)
	target := submitTarget{fx.Event.ID, fx.Team.ID, fx.Challenge.ID, fx.Tasks[0].ID}

	held := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = env.locker.WithLock(context.Background(), lock.Key(target.teamID, target.challengeID), func() error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	t.Cleanup(func() {
		close(release)
		wg.Wait()
	})
	return target
}
