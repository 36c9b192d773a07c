package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/openjam/jam-backend/internal/data/repos"
	"github.com/openjam/jam-backend/internal/data/repos/testutil"
)

const sampleDefinition = `
name: autumn-jam
starts_at: 2026-10-01T09:00:00Z
ends_at: 2026-10-01T18:00:00Z
teams:
  - rockets
  - comets
challenges:
  - problem_key: ciphers
    title: Cipher Hunt
    tasks:
      - number: 1
        title: Caesar
        points_possible: 100
        clue_penalties: [10, 20, 30]
        answer_key: brutus
        clues:
          - order: 1
            description: Shift by three.
          - order: 2
            description: Et tu?
      - number: 2
        title: Vigenere
        points_possible: 150
        clue_penalties: [15]
        answer_key: keyword
`

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write definition: %v", err)
	}
	return path
}

func TestLoadDefinition(t *testing.T) {
	def, err := LoadDefinition(writeDefinition(t, sampleDefinition))
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	if def.Name != "autumn-jam" {
		t.Fatalf("name = %q", def.Name)
	}
	if len(def.Teams) != 2 || len(def.Challenges) != 1 {
		t.Fatalf("teams=%d challenges=%d", len(def.Teams), len(def.Challenges))
	}
	tasks := def.Challenges[0].Tasks
	if len(tasks) != 2 {
		t.Fatalf("tasks = %d", len(tasks))
	}
	if tasks[0].penalty(2) != 20 || tasks[0].penalty(3) != 30 {
		t.Fatalf("unexpected penalties: %+v", tasks[0].CluePenalties)
	}
	// unspecified penalties default to zero
	if tasks[1].penalty(3) != 0 {
		t.Fatalf("penalty(3) = %d, want 0", tasks[1].penalty(3))
	}
}

func TestLoadDefinitionRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no name", "challenges: [{problem_key: x, tasks: [{number: 1, answer_key: a}]}]"},
		{"no challenges", "name: jam"},
		{"no tasks", "name: jam\nchallenges: [{problem_key: x}]"},
		{"missing answer key", "name: jam\nchallenges: [{problem_key: x, tasks: [{number: 1}]}]"},
		{"task number zero", "name: jam\nchallenges: [{problem_key: x, tasks: [{number: 0, answer_key: a}]}]"},
		{"clue order out of range", "name: jam\nchallenges: [{problem_key: x, tasks: [{number: 1, answer_key: a, clues: [{order: 4}]}]}]"},
		{"not yaml", "{{{"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadDefinition(writeDefinition(t, tc.content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoaderApply(t *testing.T) {
	db := testutil.DB(t)
	logg := testutil.Logger(t)

	def, err := LoadDefinition(writeDefinition(t, sampleDefinition))
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}

	eventID, err := NewLoader(db, logg).Apply(def)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	ctx := context.Background()
	event, err := repos.NewEventRepo(db, logg).GetByID(ctx, nil, eventID)
	if err != nil || event == nil {
		t.Fatalf("event not written: %v", err)
	}

	teams, err := repos.NewTeamRepo(db, logg).GetByEventID(ctx, nil, eventID)
	if err != nil {
		t.Fatalf("get teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("teams = %d, want 2", len(teams))
	}

	challenges, err := repos.NewChallengeRepo(db, logg).GetByEventID(ctx, nil, eventID)
	if err != nil {
		t.Fatalf("get challenges: %v", err)
	}
	if len(challenges) != 1 {
		t.Fatalf("challenges = %d, want 1", len(challenges))
	}

	tasks, err := repos.NewTaskScoringRepo(db, logg).GetByChallengeID(ctx, nil, challenges[0].ID)
	if err != nil {
		t.Fatalf("get tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(tasks))
	}
	if tasks[0].Clue1PenaltyPoints != 10 || tasks[0].Clue3PenaltyPoints != 30 {
		t.Fatalf("unexpected penalties: %+v", tasks[0])
	}

	clues, err := repos.NewClueRepo(db, logg).GetByTaskID(ctx, nil, tasks[0].ID)
	if err != nil {
		t.Fatalf("get clues: %v", err)
	}
	if len(clues) != 2 {
		t.Fatalf("clues = %d, want 2", len(clues))
	}

	answer, err := repos.NewAnswerRepo(db, logg).GetByChallengeAndTask(ctx, nil, challenges[0].ID, tasks[1].ID)
	if err != nil || answer == nil {
		t.Fatalf("answer not written: %v", err)
	}
	if answer.AnswerKey != "keyword" {
		t.Fatalf("answer key = %q", answer.AnswerKey)
	}
}
