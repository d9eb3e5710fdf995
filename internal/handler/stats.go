package handler

import (
	"net/http"

	"github.com/avasilyev/football-stats-service/internal/service"
	"github.com/avasilyev/football-stats-service/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

func (h *StatsHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/stats")
	{
		g.GET("/teams/:team_id", h.teamStats)
		g.GET("/players/:player_id", h.playerStats)
		g.GET("/top-teams", h.topTeams)
		g.GET("/top-scorers", h.topScorers)
	}
}

func (h *StatsHandler) teamStats(c *gin.Context) {
	teamID, err := pathID(c, "team_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	year, err := optIntQuery(c, "year")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	stat, err := h.svc.TeamStats(c.Request.Context(), teamID, year)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, stat)
}

func (h *StatsHandler) playerStats(c *gin.Context) {
	playerID, err := pathID(c, "player_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	year, err := optIntQuery(c, "year")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	stat, err := h.svc.PlayerStats(c.Request.Context(), playerID, year)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, stat)
}

func (h *StatsHandler) topTeams(c *gin.Context) {
	year, err := optIntQuery(c, "year")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	limit, err := optIntQuery(c, "limit")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	table, err := h.svc.TopTeams(c.Request.Context(), year, limit)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, table)
}

func (h *StatsHandler) topScorers(c *gin.Context) {
	teamID, err := optInt64Query(c, "teamId")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	year, err := optIntQuery(c, "year")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	limit, err := optIntQuery(c, "limit")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	rows, err := h.svc.TopScorers(c.Request.Context(), teamID, year, limit)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, rows)
}
