package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestStartChallengeCreatesProgress(t *testing.T) {
	env := newScoringEnv(t, nil)
	ctx := context.Background()
	fx := startFixtureChallenge(t, env)

	teamAnswer, err := env.teamAnswers.GetByTeamAndChallenge(ctx, nil, fx.Team.ID, fx.Challenge.ID)
	if err != nil {
		t.Fatalf("get team answer: %v", err)
	}
	if teamAnswer == nil {
		t.Fatal("team challenge answer was not created")
	}
	if !teamAnswer.Started || teamAnswer.Completed || teamAnswer.Score != 0 {
		t.Fatalf("unexpected team answer state: %+v", teamAnswer)
	}

	progress, err := env.taskProgress.GetByTeamAndChallenge(ctx, nil, fx.Team.ID, fx.Challenge.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("expected 2 progress rows, got %d", len(progress))
	}
	for _, p := range progress {
		if p.PointsEarned != p.PointsPossible {
			t.Fatalf("task %s: points earned %d, want %d", p.TaskID, p.PointsEarned, p.PointsPossible)
		}
		if p.Completed {
			t.Fatalf("task %s: completed on start", p.TaskID)
		}
		wantLocked := p.TaskID != fx.Tasks[0].ID
		if p.Locked != wantLocked {
			t.Fatalf("task %s: locked=%v, want %v", p.TaskID, p.Locked, wantLocked)
		}
		clues, err := p.DecodeUsedClues()
		if err != nil {
			t.Fatalf("decode used clues: %v", err)
		}
		if len(clues) != 0 {
			t.Fatalf("task %s: %d used clues on start", p.TaskID, len(clues))
		}
	}

	stats, err := env.stats.GetByChallengeID(ctx, nil, fx.Challenge.ID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats == nil || stats.TeamsStarted != 1 {
		t.Fatalf("unexpected stats after start: %+v", stats)
	}
}

func TestStartChallengeTwiceRejected(t *testing.T) {
	env := newScoringEnv(t, nil)
	ctx := context.Background()
	fx := startFixtureChallenge(t, env)

	res, err := env.challenges.StartChallenge(ctx, StartChallengeInput{
		EventID:     fx.Event.ID,
		TeamID:      fx.Team.ID,
		ChallengeID: fx.Challenge.ID,
	})
	if err != nil {
		t.Fatalf("StartChallenge: %v", err)
	}
	if res.Success || res.Code != CodeChallengeAlreadyStarted {
		t.Fatalf("expected %s, got %+v", CodeChallengeAlreadyStarted, res)
	}

	progress, err := env.taskProgress.GetByTeamAndChallenge(ctx, nil, fx.Team.ID, fx.Challenge.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("restart duplicated progress rows: %d", len(progress))
	}
}

func TestStartChallengeWrongEvent(t *testing.T) {
	env := newScoringEnv(t, nil)
	ctx := context.Background()
	fx := startFixtureChallenge(t, env)

	res, err := env.challenges.StartChallenge(ctx, StartChallengeInput{
		EventID:     uuid.New(),
		TeamID:      fx.Team.ID,
		ChallengeID: fx.Challenge.ID,
	})
	if err != nil {
		t.Fatalf("StartChallenge: %v", err)
	}
	if res.Success || res.Code != CodeChallengeNotFound {
		t.Fatalf("expected %s, got %+v", CodeChallengeNotFound, res)
	}
}
