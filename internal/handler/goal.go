package handler

import (
	"net/http"

	"github.com/avasilyev/football-stats-service/internal/service"
	"github.com/avasilyev/football-stats-service/pkg/response"
	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	svc service.GoalService
}

func NewGoalHandler(svc service.GoalService) *GoalHandler { return &GoalHandler{svc: svc} }

func (h *GoalHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/goals")
	{
		g.POST("", h.create)
		g.GET("/:goal_id", h.getByID)
		g.GET("", h.list)
		g.PATCH("/:goal_id", h.patch)
		g.DELETE("/:goal_id", h.delete)
	}
	// Goal history nested under players.
	r.Group("/players").GET("/:player_id/goals", h.listByPlayer)
}

type createGoalRequest struct {
	MatchID  int64 `json:"match_id"`
	PlayerID int64 `json:"player_id"`
	Minute   int   `json:"minute"`
}

func (h *GoalHandler) create(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	goal, err := h.svc.CreateGoal(c.Request.Context(), req.MatchID, req.PlayerID, req.Minute)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, goal)
}

func (h *GoalHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "goal_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	goal, err := h.svc.GetGoal(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, goal)
}

func (h *GoalHandler) list(c *gin.Context) {
	res, err := h.svc.ListGoals(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *GoalHandler) listByPlayer(c *gin.Context) {
	playerID, err := pathID(c, "player_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	goals, err := h.svc.ListGoalsByPlayer(c.Request.Context(), playerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, goals)
}

type patchGoalRequest struct {
	MatchID  *int64 `json:"match_id"`
	PlayerID *int64 `json:"player_id"`
	Minute   *int   `json:"minute"`
}

func (h *GoalHandler) patch(c *gin.Context) {
	id, err := pathID(c, "goal_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req patchGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	goal, err := h.svc.PatchGoal(c.Request.Context(), id, service.GoalPatch{
		MatchID:  req.MatchID,
		PlayerID: req.PlayerID,
		Minute:   req.Minute,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, goal)
}

func (h *GoalHandler) delete(c *gin.Context) {
	id, err := pathID(c, "goal_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.DeleteGoal(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
