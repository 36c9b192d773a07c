package scoring

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/openjam/jam-backend/internal/data/repos/testutil"
	types "github.com/openjam/jam-backend/internal/domain"
)

func TestTaskProgressRepoRoundTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewTaskProgressRepo(db, testutil.Logger(t))

	fx := testutil.SeedTwoTaskChallenge(t, ctx, tx)
	rows := []*types.TaskProgress{
		{
			ID:             uuid.New(),
			TeamID:         fx.Team.ID,
			TaskID:         fx.Tasks[0].ID,
			ChallengeID:    fx.Challenge.ID,
			PointsPossible: 100,
			PointsEarned:   100,
			UsedClues:      datatypes.JSON([]byte("[]")),
		},
		{
			ID:             uuid.New(),
			TeamID:         fx.Team.ID,
			TaskID:         fx.Tasks[1].ID,
			ChallengeID:    fx.Challenge.ID,
			PointsPossible: 100,
			PointsEarned:   100,
			UsedClues:      datatypes.JSON([]byte("[]")),
			Locked:         true,
		},
	}
	if _, err := repo.Create(ctx, tx, rows); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByTeamAndTask(ctx, tx, fx.Team.ID, fx.Tasks[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != rows[0].ID {
		t.Fatalf("unexpected row: %+v", got)
	}

	got.PointsEarned = 70
	got.Completed = true
	if err := repo.Update(ctx, tx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, err := repo.GetByTeamAndTask(ctx, tx, fx.Team.ID, fx.Tasks[0].ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if again.PointsEarned != 70 || !again.Completed {
		t.Fatalf("update not persisted: %+v", again)
	}

	all, err := repo.GetByTeamAndChallenge(ctx, tx, fx.Team.ID, fx.Challenge.ID)
	if err != nil {
		t.Fatalf("get by challenge: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("rows = %d, want 2", len(all))
	}
}

func TestTaskProgressRepoMissingRow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewTaskProgressRepo(db, testutil.Logger(t))

	got, err := repo.GetByTeamAndTask(context.Background(), tx, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing row, got %+v", got)
	}
}

func TestUsedCluesEncodeDecode(t *testing.T) {
	p := &types.TaskProgress{}
	used, err := p.DecodeUsedClues()
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if len(used) != 0 {
		t.Fatalf("decoded %d clues from empty column", len(used))
	}

	want := []types.UsedClue{
		{Order: 1, Description: "first", Penalty: 10},
		{Order: 3, Description: "third", Penalty: 30},
	}
	if err := p.EncodeUsedClues(want); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := p.DecodeUsedClues()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
