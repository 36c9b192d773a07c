package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/openjam/jam-backend/internal/data/repos"
	"github.com/openjam/jam-backend/internal/observability"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

// LeaderboardRow is one ranked line of an event leaderboard. Teams with
// equal scores share a rank and the next rank is skipped (competition
// ranking: 1, 1, 3).
type LeaderboardRow struct {
	Rank     int       `json:"rank"`
	TeamID   uuid.UUID `json:"team_id"`
	TeamName string    `json:"team_name"`
	Score    int       `json:"score"`
}

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, eventID uuid.UUID) ([]*LeaderboardRow, error)
	GetTeamRank(ctx context.Context, eventID, teamID uuid.UUID) (*LeaderboardRow, error)
}

type leaderboardService struct {
	log     *logger.Logger
	metrics *observability.Metrics
	group   singleflight.Group

	entries repos.LeaderboardEntryRepo
	teams   repos.TeamRepo
}

func NewLeaderboardService(
	baseLog *logger.Logger,
	metrics *observability.Metrics,
	entries repos.LeaderboardEntryRepo,
	teams repos.TeamRepo,
) LeaderboardService {
	return &leaderboardService{
		log:     baseLog.With("service", "LeaderboardService"),
		metrics: metrics,
		entries: entries,
		teams:   teams,
	}
}

// GetLeaderboard ranks the event's teams at read time. Ranks are never
// stored, so concurrent score updates can only ever produce a leaderboard
// that was true at some instant. Concurrent reads for the same event
// collapse into a single query via singleflight.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, eventID uuid.UUID) ([]*LeaderboardRow, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveOpDuration("get_leaderboard", time.Since(start).Seconds())
	}()

	v, err, _ := s.group.Do(eventID.String(), func() (interface{}, error) {
		return s.buildLeaderboard(ctx, eventID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*LeaderboardRow), nil
}

func (s *leaderboardService) GetTeamRank(ctx context.Context, eventID, teamID uuid.UUID) (*LeaderboardRow, error) {
	rows, err := s.GetLeaderboard(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.TeamID == teamID {
			return row, nil
		}
	}
	return nil, nil
}

func (s *leaderboardService) buildLeaderboard(ctx context.Context, eventID uuid.UUID) ([]*LeaderboardRow, error) {
	entries, err := s.entries.ListByEventID(ctx, nil, eventID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teams.GetByEventID(ctx, nil, eventID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(teams))
	for _, team := range teams {
		names[team.ID] = team.Name
	}

	rows := make([]*LeaderboardRow, 0, len(entries))
	rank := 0
	for i, entry := range entries {
		if i == 0 || entry.Score != entries[i-1].Score {
			rank = i + 1
		}
		rows = append(rows, &LeaderboardRow{
			Rank:     rank,
			TeamID:   entry.TeamID,
			TeamName: names[entry.TeamID],
			Score:    entry.Score,
		})
	}
	return rows, nil
}
