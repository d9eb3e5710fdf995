package handler

import (
	"github.com/avasilyev/football-stats-service/internal/service"
	"github.com/gin-gonic/gin"
)

// Services bundles the service layer dependencies for route registration.
// One struct beats a nine-argument Register signature.
type Services struct {
	Coaches       service.CoachService
	Teams         service.TeamService
	Players       service.PlayerService
	Championships service.ChampionshipService
	Matches       service.MatchService
	Goals         service.GoalService
	Stats         service.StatsService
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, repo Pinger, svcs Services) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewCoachHandler(svcs.Coaches).Register(api)
		NewTeamHandler(svcs.Teams).Register(api)
		NewPlayerHandler(svcs.Players).Register(api)
		NewChampionshipHandler(svcs.Championships).Register(api)
		NewMatchHandler(svcs.Matches).Register(api)
		NewGoalHandler(svcs.Goals).Register(api)
		NewStatsHandler(svcs.Stats).Register(api)
	}
}
