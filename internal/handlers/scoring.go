package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openjam/jam-backend/internal/services"
)

type ScoringHandler struct {
	challengeService services.ChallengeService
	answerService    services.AnswerService
	clueService      services.ClueService
}

func NewScoringHandler(
	challengeService services.ChallengeService,
	answerService services.AnswerService,
	clueService services.ClueService,
) *ScoringHandler {
	return &ScoringHandler{
		challengeService: challengeService,
		answerService:    answerService,
		clueService:      clueService,
	}
}

type startChallengeRequest struct {
	TeamID uuid.UUID `json:"team_id" binding:"required"`
}

func (sh *ScoringHandler) StartChallenge(c *gin.Context) {
	eventID, challengeID, ok := eventChallengeParams(c)
	if !ok {
		return
	}
	var req startChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	res, err := sh.challengeService.StartChallenge(c.Request.Context(), services.StartChallengeInput{
		EventID:     eventID,
		TeamID:      req.TeamID,
		ChallengeID: challengeID,
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}
	if !res.Success {
		RespondError(c, statusForCode(res.Code), res.Code, errors.New(res.Message))
		return
	}
	RespondOK(c, res)
}

type submitAnswerRequest struct {
	TeamID uuid.UUID `json:"team_id" binding:"required"`
	TaskID uuid.UUID `json:"task_id" binding:"required"`
	Answer string    `json:"answer" binding:"required"`
}

func (sh *ScoringHandler) SubmitAnswer(c *gin.Context) {
	eventID, challengeID, ok := eventChallengeParams(c)
	if !ok {
		return
	}
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	res, err := sh.answerService.SubmitAnswer(c.Request.Context(), services.SubmitAnswerInput{
		EventID:     eventID,
		TeamID:      req.TeamID,
		ChallengeID: challengeID,
		TaskID:      req.TaskID,
		Answer:      req.Answer,
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}
	if !res.Success {
		RespondError(c, statusForCode(res.Code), res.Code, errors.New(res.Message))
		return
	}
	RespondOK(c, res)
}

type openClueRequest struct {
	TeamID    uuid.UUID `json:"team_id" binding:"required"`
	TaskID    uuid.UUID `json:"task_id" binding:"required"`
	ClueOrder int       `json:"clue_order" binding:"required,min=1,max=3"`
}

func (sh *ScoringHandler) OpenClue(c *gin.Context) {
	eventID, challengeID, ok := eventChallengeParams(c)
	if !ok {
		return
	}
	var req openClueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	res, err := sh.clueService.OpenClue(c.Request.Context(), services.OpenClueInput{
		EventID:     eventID,
		TeamID:      req.TeamID,
		ChallengeID: challengeID,
		TaskID:      req.TaskID,
		ClueOrder:   req.ClueOrder,
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}
	if !res.Success {
		RespondError(c, statusForCode(res.Code), res.Code, errors.New(res.Message))
		return
	}
	RespondOK(c, res)
}

func eventChallengeParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_EVENT_ID", err)
		return uuid.Nil, uuid.Nil, false
	}
	challengeID, err := uuid.Parse(c.Param("challengeID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_CHALLENGE_ID", err)
		return uuid.Nil, uuid.Nil, false
	}
	return eventID, challengeID, true
}
