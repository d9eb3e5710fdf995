package handler

import (
	"net/http"

	"github.com/avasilyev/football-stats-service/internal/service"
	"github.com/avasilyev/football-stats-service/pkg/response"
	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	svc service.PlayerService
}

func NewPlayerHandler(svc service.PlayerService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.POST("", h.create)
		g.GET("/:player_id", h.getByID)
		g.GET("", h.list)
		g.PATCH("/:player_id", h.patch)
		g.DELETE("/:player_id", h.delete)
	}
	// Roster view nested under teams; reuses the team_id wildcard.
	r.Group("/teams").GET("/:team_id/players", h.listByTeam)
}

type createPlayerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TeamID    *int64 `json:"team_id"`
}

func (h *PlayerHandler) create(c *gin.Context) {
	var req createPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	player, err := h.svc.CreatePlayer(c.Request.Context(), req.FirstName, req.LastName, req.TeamID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, player)
}

func (h *PlayerHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "player_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	player, err := h.svc.GetPlayer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}

func (h *PlayerHandler) list(c *gin.Context) {
	res, err := h.svc.ListPlayers(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *PlayerHandler) listByTeam(c *gin.Context) {
	teamID, err := pathID(c, "team_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListPlayersByTeam(c.Request.Context(), teamID, pageFromQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

type patchPlayerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	TeamID    *int64  `json:"team_id"`
}

func (h *PlayerHandler) patch(c *gin.Context) {
	id, err := pathID(c, "player_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req patchPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	player, err := h.svc.PatchPlayer(c.Request.Context(), id, service.PlayerPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		TeamID:    req.TeamID,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}

func (h *PlayerHandler) delete(c *gin.Context) {
	id, err := pathID(c, "player_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.DeletePlayer(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
