package handler

import (
	"net/http"

	"github.com/avasilyev/football-stats-service/internal/service"
	"github.com/avasilyev/football-stats-service/pkg/response"
	"github.com/gin-gonic/gin"
)

type CoachHandler struct {
	svc service.CoachService
}

func NewCoachHandler(svc service.CoachService) *CoachHandler { return &CoachHandler{svc: svc} }

func (h *CoachHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/coaches")
	{
		g.POST("", h.create)
		g.GET("/:coach_id", h.getByID)
		g.GET("", h.list)
		g.PATCH("/:coach_id", h.patch)
		g.DELETE("/:coach_id", h.delete)
	}
}

type createCoachRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *CoachHandler) create(c *gin.Context) {
	var req createCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	coach, err := h.svc.CreateCoach(c.Request.Context(), req.FirstName, req.LastName)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, coach)
}

func (h *CoachHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "coach_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	coach, err := h.svc.GetCoach(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, coach)
}

func (h *CoachHandler) list(c *gin.Context) {
	res, err := h.svc.ListCoaches(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

type patchCoachRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (h *CoachHandler) patch(c *gin.Context) {
	id, err := pathID(c, "coach_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req patchCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	coach, err := h.svc.PatchCoach(c.Request.Context(), id, service.CoachPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, coach)
}

func (h *CoachHandler) delete(c *gin.Context) {
	id, err := pathID(c, "coach_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.DeleteCoach(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
