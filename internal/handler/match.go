package handler

import (
	"net/http"
	"time"

	"github.com/avasilyev/football-stats-service/internal/service"
	"github.com/avasilyev/football-stats-service/pkg/response"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	svc service.MatchService
}

func NewMatchHandler(svc service.MatchService) *MatchHandler { return &MatchHandler{svc: svc} }

func (h *MatchHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/matches")
	{
		g.POST("", h.create)
		g.GET("/:match_id", h.getByID)
		g.GET("", h.list)
		g.PATCH("/:match_id", h.patch)
		g.POST("/:match_id/result", h.setResult)
		g.DELETE("/:match_id", h.delete)
	}
}

type lineupItemRequest struct {
	PlayerID      int64 `json:"player_id"`
	Starting      *bool `json:"starting"`
	MinutesPlayed *int  `json:"minutes_played"`
}

func toLineup(items []lineupItemRequest) []service.LineupItem {
	if items == nil {
		return nil
	}
	out := make([]service.LineupItem, 0, len(items))
	for _, it := range items {
		out = append(out, service.LineupItem{
			PlayerID:      it.PlayerID,
			Starting:      it.Starting,
			MinutesPlayed: it.MinutesPlayed,
		})
	}
	return out
}

type createMatchRequest struct {
	Team1ID        int64               `json:"team1_id"`
	Team2ID        int64               `json:"team2_id"`
	MatchDate      string              `json:"match_date"` // RFC3339
	ChampionshipID *int64              `json:"championship_id"`
	LineupTeam1    []lineupItemRequest `json:"lineup_team1"`
	LineupTeam2    []lineupItemRequest `json:"lineup_team2"`
}

func (h *MatchHandler) create(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	matchDate, err := time.Parse(time.RFC3339, req.MatchDate)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{
			{Field: "match_date", Message: "must be an RFC3339 timestamp"},
		}))
		return
	}
	match, err := h.svc.CreateMatch(c.Request.Context(), service.CreateMatchInput{
		Team1ID:        req.Team1ID,
		Team2ID:        req.Team2ID,
		MatchDate:      matchDate,
		ChampionshipID: req.ChampionshipID,
		LineupTeam1:    toLineup(req.LineupTeam1),
		LineupTeam2:    toLineup(req.LineupTeam2),
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, match)
}

func (h *MatchHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "match_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	match, err := h.svc.GetMatch(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}

func (h *MatchHandler) list(c *gin.Context) {
	res, err := h.svc.ListMatches(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

type patchMatchRequest struct {
	Team1ID        *int64              `json:"team1_id"`
	Team2ID        *int64              `json:"team2_id"`
	MatchDate      *string             `json:"match_date"`
	ChampionshipID *int64              `json:"championship_id"`
	LineupTeam1    []lineupItemRequest `json:"lineup_team1"`
	LineupTeam2    []lineupItemRequest `json:"lineup_team2"`
}

func (h *MatchHandler) patch(c *gin.Context) {
	id, err := pathID(c, "match_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req patchMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	patch := service.MatchPatch{
		Team1ID:        req.Team1ID,
		Team2ID:        req.Team2ID,
		ChampionshipID: req.ChampionshipID,
		LineupTeam1:    toLineup(req.LineupTeam1),
		LineupTeam2:    toLineup(req.LineupTeam2),
	}
	if req.MatchDate != nil {
		t, err := time.Parse(time.RFC3339, *req.MatchDate)
		if err != nil {
			response.WriteError(c, service.NewInvalidInputError([]service.FieldError{
				{Field: "match_date", Message: "must be an RFC3339 timestamp"},
			}))
			return
		}
		patch.MatchDate = &t
	}
	match, err := h.svc.PatchMatch(c.Request.Context(), id, patch)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}

type matchResultRequest struct {
	Team1Score int `json:"team1_score"`
	Team2Score int `json:"team2_score"`
}

func (h *MatchHandler) setResult(c *gin.Context) {
	id, err := pathID(c, "match_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req matchResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	match, err := h.svc.SetResult(c.Request.Context(), id, req.Team1Score, req.Team2Score)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}

func (h *MatchHandler) delete(c *gin.Context) {
	id, err := pathID(c, "match_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.DeleteMatch(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
