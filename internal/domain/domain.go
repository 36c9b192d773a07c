package domain

import (
	"github.com/openjam/jam-backend/internal/domain/event"
	"github.com/openjam/jam-backend/internal/domain/scoring"
)

const (
	EventClueOpened         = scoring.EventClueOpened
	EventAnswerCorrect      = scoring.EventAnswerCorrect
	EventChallengeStarted   = scoring.EventChallengeStarted
	EventChallengeCompleted = scoring.EventChallengeCompleted
)

type Event = event.Event
type Challenge = event.Challenge
type TaskScoring = event.TaskScoring
type Clue = event.Clue
type Answer = event.Answer
type Team = event.Team

type UsedClue = scoring.UsedClue
type TaskProgress = scoring.TaskProgress
type TeamChallengeAnswer = scoring.TeamChallengeAnswer
type ChallengeStatistics = scoring.ChallengeStatistics
type LeaderboardEntry = scoring.LeaderboardEntry
type LeaderboardEntryHistory = scoring.LeaderboardEntryHistory
type EventLogEntry = scoring.EventLogEntry
