package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openjam/jam-backend/internal/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func (lh *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_EVENT_ID", err)
		return
	}
	rows, err := lh.leaderboardService.GetLeaderboard(c.Request.Context(), eventID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}
	RespondOK(c, gin.H{"leaderboard": rows})
}

func (lh *LeaderboardHandler) GetTeamRank(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_EVENT_ID", err)
		return
	}
	teamID, err := uuid.Parse(c.Param("teamID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_TEAM_ID", err)
		return
	}
	row, err := lh.leaderboardService.GetTeamRank(c.Request.Context(), eventID, teamID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "TEAM_NOT_RANKED", errors.New("team has no score yet"))
		return
	}
	RespondOK(c, row)
}
