package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openjam/jam-backend/internal/domain"
)

func SeedEvent(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Event {
	tb.Helper()
	e := &types.Event{
		ID:       uuid.New(),
		Name:     name,
		StartsAt: time.Now().Add(-time.Hour),
		EndsAt:   time.Now().Add(time.Hour),
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed event: %v", err)
	}
	return e
}

func SeedTeam(tb testing.TB, ctx context.Context, tx *gorm.DB, eventID uuid.UUID, name string) *types.Team {
	tb.Helper()
	t := &types.Team{
		ID:      uuid.New(),
		EventID: eventID,
		Name:    name,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed team: %v", err)
	}
	return t
}

func SeedChallenge(tb testing.TB, ctx context.Context, tx *gorm.DB, eventID uuid.UUID, title string) *types.Challenge {
	tb.Helper()
	c := &types.Challenge{
		ID:         uuid.New(),
		EventID:    eventID,
		ProblemKey: "problem-" + uuid.NewString()[:8],
		Title:      title,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed challenge: %v", err)
	}
	return c
}

func SeedTaskScoring(tb testing.TB, ctx context.Context, tx *gorm.DB, challengeID uuid.UUID, number, points int) *types.TaskScoring {
	tb.Helper()
	ts := &types.TaskScoring{
		ID:                 uuid.New(),
		ChallengeID:        challengeID,
		TaskNumber:         number,
		Title:              "task",
		PointsPossible:     points,
		Clue1PenaltyPoints: 10,
		Clue2PenaltyPoints: 20,
		Clue3PenaltyPoints: 30,
	}
	if err := tx.WithContext(ctx).Create(ts).Error; err != nil {
		tb.Fatalf("seed task scoring: %v", err)
	}
	return ts
}

func SeedClue(tb testing.TB, ctx context.Context, tx *gorm.DB, taskID uuid.UUID, order int) *types.Clue {
	tb.Helper()
	c := &types.Clue{
		ID:          uuid.New(),
		TaskID:      taskID,
		Order:       order,
		Description: "clue",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed clue: %v", err)
	}
	return c
}

func SeedAnswer(tb testing.TB, ctx context.Context, tx *gorm.DB, challengeID, taskID uuid.UUID, key string) *types.Answer {
	tb.Helper()
	a := &types.Answer{
		ID:          uuid.New(),
		ChallengeID: challengeID,
		TaskID:      taskID,
		AnswerKey:   key,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed answer: %v", err)
	}
	return a
}

// ChallengeFixture bundles the static rows of a seeded two-task challenge.
type ChallengeFixture struct {
	Event     *types.Event
	Team      *types.Team
	Challenge *types.Challenge
	Tasks     []*types.TaskScoring
	Answers   []*types.Answer
}

// SeedTwoTaskChallenge builds an event with one team and one challenge of two
// tasks (100 points each, answer keys "alpha" and "bravo", three clues on the
// first task).
func SeedTwoTaskChallenge(tb testing.TB, ctx context.Context, tx *gorm.DB) *ChallengeFixture {
	tb.Helper()
	e := SeedEvent(tb, ctx, tx, "jam")
	team := SeedTeam(tb, ctx, tx, e.ID, "team")
	ch := SeedChallenge(tb, ctx, tx, e.ID, "challenge")
	t1 := SeedTaskScoring(tb, ctx, tx, ch.ID, 1, 100)
	t2 := SeedTaskScoring(tb, ctx, tx, ch.ID, 2, 100)
	for order := 1; order <= 3; order++ {
		SeedClue(tb, ctx, tx, t1.ID, order)
	}
	a1 := SeedAnswer(tb, ctx, tx, ch.ID, t1.ID, "alpha")
	a2 := SeedAnswer(tb, ctx, tx, ch.ID, t2.ID, "bravo")
	return &ChallengeFixture{
		Event:     e,
		Team:      team,
		Challenge: ch,
		Tasks:     []*types.TaskScoring{t1, t2},
		Answers:   []*types.Answer{a1, a2},
	}
}
