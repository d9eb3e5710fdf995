package handler

import (
	"net/http"
	"time"

	"github.com/avasilyev/football-stats-service/internal/service"
	"github.com/avasilyev/football-stats-service/pkg/response"
	"github.com/gin-gonic/gin"
)

type ChampionshipHandler struct {
	svc service.ChampionshipService
}

func NewChampionshipHandler(svc service.ChampionshipService) *ChampionshipHandler {
	return &ChampionshipHandler{svc: svc}
}

func (h *ChampionshipHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/championships")
	{
		g.POST("", h.create)
		g.GET("/:championship_id", h.getByID)
		g.GET("", h.list)
		g.PATCH("/:championship_id", h.patch)
		g.DELETE("/:championship_id", h.delete)
	}
}

type createChampionshipRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // RFC3339, optional
	EndDate   string `json:"end_date"`   // RFC3339, optional
}

func parseOptDate(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, service.NewInvalidInputError([]service.FieldError{
			{Field: field, Message: "must be an RFC3339 timestamp"},
		})
	}
	return &t, nil
}

func (h *ChampionshipHandler) create(c *gin.Context) {
	var req createChampionshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	start, err := parseOptDate(req.StartDate, "start_date")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	end, err := parseOptDate(req.EndDate, "end_date")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	ch, err := h.svc.CreateChampionship(c.Request.Context(), req.Name, start, end)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, ch)
}

func (h *ChampionshipHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "championship_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	ch, err := h.svc.GetChampionship(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, ch)
}

func (h *ChampionshipHandler) list(c *gin.Context) {
	res, err := h.svc.ListChampionships(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

type patchChampionshipRequest struct {
	Name      *string `json:"name"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func (h *ChampionshipHandler) patch(c *gin.Context) {
	id, err := pathID(c, "championship_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req patchChampionshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	patch := service.ChampionshipPatch{Name: req.Name}
	if req.StartDate != nil {
		t, err := parseOptDate(*req.StartDate, "start_date")
		if err != nil {
			response.WriteError(c, err)
			return
		}
		patch.StartDate = t
	}
	if req.EndDate != nil {
		t, err := parseOptDate(*req.EndDate, "end_date")
		if err != nil {
			response.WriteError(c, err)
			return
		}
		patch.EndDate = t
	}
	ch, err := h.svc.PatchChampionship(c.Request.Context(), id, patch)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, ch)
}

func (h *ChampionshipHandler) delete(c *gin.Context) {
	id, err := pathID(c, "championship_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.DeleteChampionship(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
