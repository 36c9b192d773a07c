package db

import (
	types "github.com/openjam/jam-backend/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrateAll creates/updates every table the scoring engine owns or reads.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Event{},
		&types.Team{},
		&types.Challenge{},
		&types.TaskScoring{},
		&types.Clue{},
		&types.Answer{},

		&types.TaskProgress{},
		&types.TeamChallengeAnswer{},
		&types.ChallengeStatistics{},
		&types.LeaderboardEntry{},
		&types.LeaderboardEntryHistory{},
		&types.EventLogEntry{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
