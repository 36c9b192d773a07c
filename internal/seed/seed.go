// Package seed loads YAML event definitions and writes them to the database.
// It exists so operators can stand up a full event (teams, challenges, tasks,
// clues, answer keys) from one file before the event opens.
package seed

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/openjam/jam-backend/internal/data/repos"
	types "github.com/openjam/jam-backend/internal/domain"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

type ClueDefinition struct {
	Order       int    `yaml:"order"`
	Description string `yaml:"description"`
}

type TaskDefinition struct {
	Number         int              `yaml:"number"`
	Title          string           `yaml:"title"`
	PointsPossible int              `yaml:"points_possible"`
	CluePenalties  []int            `yaml:"clue_penalties"`
	AnswerKey      string           `yaml:"answer_key"`
	Clues          []ClueDefinition `yaml:"clues"`
}

type ChallengeDefinition struct {
	ProblemKey string           `yaml:"problem_key"`
	Title      string           `yaml:"title"`
	Tasks      []TaskDefinition `yaml:"tasks"`
}

type Definition struct {
	Name       string                `yaml:"name"`
	StartsAt   time.Time             `yaml:"starts_at"`
	EndsAt     time.Time             `yaml:"ends_at"`
	Teams      []string              `yaml:"teams"`
	Challenges []ChallengeDefinition `yaml:"challenges"`
}

func LoadDefinition(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &def, nil
}

// Validate rejects definitions the scoring workflows cannot operate on.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("event name is required")
	}
	if len(d.Challenges) == 0 {
		return fmt.Errorf("event %q has no challenges", d.Name)
	}
	for _, ch := range d.Challenges {
		if ch.ProblemKey == "" {
			return fmt.Errorf("challenge %q has no problem_key", ch.Title)
		}
		if len(ch.Tasks) == 0 {
			return fmt.Errorf("challenge %q has no tasks", ch.ProblemKey)
		}
		for _, task := range ch.Tasks {
			if task.Number < 1 {
				return fmt.Errorf("challenge %q: task numbers start at 1", ch.ProblemKey)
			}
			if task.PointsPossible < 0 {
				return fmt.Errorf("challenge %q task %d: negative points_possible", ch.ProblemKey, task.Number)
			}
			if task.AnswerKey == "" {
				return fmt.Errorf("challenge %q task %d: answer_key is required", ch.ProblemKey, task.Number)
			}
			if len(task.CluePenalties) > 3 || len(task.Clues) > 3 {
				return fmt.Errorf("challenge %q task %d: at most three clues", ch.ProblemKey, task.Number)
			}
			for _, clue := range task.Clues {
				if clue.Order < 1 || clue.Order > 3 {
					return fmt.Errorf("challenge %q task %d: clue order %d out of range", ch.ProblemKey, task.Number, clue.Order)
				}
			}
		}
	}
	return nil
}

func (t *TaskDefinition) penalty(order int) int {
	if order <= len(t.CluePenalties) {
		return t.CluePenalties[order-1]
	}
	return 0
}

type Loader struct {
	db  *gorm.DB
	log *logger.Logger

	events     repos.EventRepo
	teams      repos.TeamRepo
	challenges repos.ChallengeRepo
	tasks      repos.TaskScoringRepo
	clues      repos.ClueRepo
	answers    repos.AnswerRepo
}

func NewLoader(db *gorm.DB, baseLog *logger.Logger) *Loader {
	return &Loader{
		db:         db,
		log:        baseLog.With("component", "SeedLoader"),
		events:     repos.NewEventRepo(db, baseLog),
		teams:      repos.NewTeamRepo(db, baseLog),
		challenges: repos.NewChallengeRepo(db, baseLog),
		tasks:      repos.NewTaskScoringRepo(db, baseLog),
		clues:      repos.NewClueRepo(db, baseLog),
		answers:    repos.NewAnswerRepo(db, baseLog),
	}
}

// Apply writes the definition in one transaction and returns the new event ID.
func (l *Loader) Apply(def *Definition) (uuid.UUID, error) {
	eventID := uuid.New()
	err := l.db.Transaction(func(tx *gorm.DB) error {
		ctx := tx.Statement.Context

		if _, err := l.events.Create(ctx, tx, []*types.Event{{
			ID:       eventID,
			Name:     def.Name,
			StartsAt: def.StartsAt,
			EndsAt:   def.EndsAt,
		}}); err != nil {
			return err
		}

		teamRows := make([]*types.Team, 0, len(def.Teams))
		for _, name := range def.Teams {
			teamRows = append(teamRows, &types.Team{ID: uuid.New(), EventID: eventID, Name: name})
		}
		if len(teamRows) > 0 {
			if _, err := l.teams.Create(ctx, tx, teamRows); err != nil {
				return err
			}
		}

		for _, ch := range def.Challenges {
			challengeID := uuid.New()
			if _, err := l.challenges.Create(ctx, tx, []*types.Challenge{{
				ID:         challengeID,
				EventID:    eventID,
				ProblemKey: ch.ProblemKey,
				Title:      ch.Title,
			}}); err != nil {
				return err
			}
			for _, task := range ch.Tasks {
				taskID := uuid.New()
				if _, err := l.tasks.Create(ctx, tx, []*types.TaskScoring{{
					ID:                 taskID,
					ChallengeID:        challengeID,
					TaskNumber:         task.Number,
					Title:              task.Title,
					PointsPossible:     task.PointsPossible,
					Clue1PenaltyPoints: task.penalty(1),
					Clue2PenaltyPoints: task.penalty(2),
					Clue3PenaltyPoints: task.penalty(3),
				}}); err != nil {
					return err
				}
				if _, err := l.answers.Create(ctx, tx, []*types.Answer{{
					ID:          uuid.New(),
					ChallengeID: challengeID,
					TaskID:      taskID,
					AnswerKey:   task.AnswerKey,
				}}); err != nil {
					return err
				}
				for _, clue := range task.Clues {
					if _, err := l.clues.Create(ctx, tx, []*types.Clue{{
						ID:          uuid.New(),
						TaskID:      taskID,
						Order:       clue.Order,
						Description: clue.Description,
					}}); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	l.log.Info("Applied event definition", "event_id", eventID, "challenges", len(def.Challenges), "teams", len(def.Teams))
	return eventID, nil
}
