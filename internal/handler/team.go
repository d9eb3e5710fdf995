package handler

import (
	"net/http"

	"github.com/avasilyev/football-stats-service/internal/service"
	"github.com/avasilyev/football-stats-service/pkg/response"
	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	svc service.TeamService
}

func NewTeamHandler(svc service.TeamService) *TeamHandler { return &TeamHandler{svc: svc} }

func (h *TeamHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/teams")
	{
		g.POST("", h.create)
		// Use a stable wildcard name (team_id) so nested routes (e.g. players) can reuse it without Gin conflicts.
		g.GET("/:team_id", h.getByID)
		g.GET("", h.list)
		g.PATCH("/:team_id", h.patch)
		g.DELETE("/:team_id", h.delete)
	}
}

type createTeamRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	CoachID *int64 `json:"coach_id"`
}

func (h *TeamHandler) create(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	team, err := h.svc.CreateTeam(c.Request.Context(), req.Name, req.Country, req.CoachID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, team)
}

func (h *TeamHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "team_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	team, err := h.svc.GetTeam(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) list(c *gin.Context) {
	res, err := h.svc.ListTeams(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

type patchTeamRequest struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
	CoachID *int64  `json:"coach_id"`
}

func (h *TeamHandler) patch(c *gin.Context) {
	id, err := pathID(c, "team_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req patchTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	team, err := h.svc.PatchTeam(c.Request.Context(), id, service.TeamPatch{
		Name:    req.Name,
		Country: req.Country,
		CoachID: req.CoachID,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) delete(c *gin.Context) {
	id, err := pathID(c, "team_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.DeleteTeam(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
