package publisher

import (
	"context"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/rs/zerolog"
)

// Nop is the publisher used when Kafka is disabled in config. Stats queries
// behave identically; events just go nowhere.
type Nop struct {
	log zerolog.Logger
}

func NewNop(logger zerolog.Logger) *Nop {
	return &Nop{log: logger.With().Str("module", "publisher").Str("component", "nop").Logger()}
}

func (p *Nop) PublishTeamStats(_ context.Context, stat model.TeamStat) {
	p.log.Debug().Int64("team_id", stat.TeamID).Msg("publishing disabled, team stats event dropped")
}

func (p *Nop) PublishPlayerStats(_ context.Context, stat model.PlayerStat) {
	p.log.Debug().Int64("player_id", stat.PlayerID).Msg("publishing disabled, player stats event dropped")
}

func (p *Nop) PublishTopTeams(_ context.Context, table []model.TeamStat, _, _ *int) {
	p.log.Debug().Int("rows", len(table)).Msg("publishing disabled, top teams event dropped")
}

func (p *Nop) PublishTopScorers(_ context.Context, rows []model.TopScorerEntry, _ *int64, _, _ *int) {
	p.log.Debug().Int("rows", len(rows)).Msg("publishing disabled, top scorers event dropped")
}
