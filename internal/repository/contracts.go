package repository

import (
	"context"
	"time"

	"github.com/avasilyev/football-stats-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// CoachRepository declares persistence operations for coaches.
type CoachRepository interface {
	Create(ctx context.Context, c model.Coach) (model.Coach, error)
	GetByID(ctx context.Context, id int64) (model.Coach, error)
	List(ctx context.Context, p Page) (PageResult[model.Coach], error)
	Update(ctx context.Context, c model.Coach) (model.Coach, error)
	Delete(ctx context.Context, id int64) error
}

// TeamRepository declares persistence operations for teams.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type TeamRepository interface {
	Create(ctx context.Context, t model.Team) (model.Team, error)
	GetByID(ctx context.Context, id int64) (model.Team, error)
	List(ctx context.Context, p Page) (PageResult[model.Team], error)
	Update(ctx context.Context, t model.Team) (model.Team, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// PlayerRepository declares persistence operations for players.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	GetByID(ctx context.Context, id int64) (model.Player, error)
	List(ctx context.Context, p Page) (PageResult[model.Player], error)
	ListByTeam(ctx context.Context, teamID int64, p Page) (PageResult[model.Player], error)
	Update(ctx context.Context, p model.Player) (model.Player, error)
	Delete(ctx context.Context, id int64) error
}

// ChampionshipRepository declares persistence operations for championships.
type ChampionshipRepository interface {
	Create(ctx context.Context, c model.Championship) (model.Championship, error)
	GetByID(ctx context.Context, id int64) (model.Championship, error)
	List(ctx context.Context, p Page) (PageResult[model.Championship], error)
	Update(ctx context.Context, c model.Championship) (model.Championship, error)
	Delete(ctx context.Context, id int64) error
}

// MatchRepository declares persistence operations for matches.
// Date-range reads feed the stats aggregation core; the range is half-open [from, to).
type MatchRepository interface {
	Create(ctx context.Context, m model.Match) (model.Match, error)
	GetByID(ctx context.Context, id int64) (model.Match, error)
	List(ctx context.Context, p Page) (PageResult[model.Match], error)
	Update(ctx context.Context, m model.Match) (model.Match, error)
	Delete(ctx context.Context, id int64) error
	ExistsByTeamsAndDate(ctx context.Context, team1ID, team2ID int64, date time.Time) (bool, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Match, error)
	ListByTeamAndDateRange(ctx context.Context, teamID int64, from, to time.Time) ([]model.Match, error)
}

// GoalRepository declares persistence operations for goal events.
type GoalRepository interface {
	Create(ctx context.Context, g model.Goal) (model.Goal, error)
	GetByID(ctx context.Context, id int64) (model.Goal, error)
	List(ctx context.Context, p Page) (PageResult[model.Goal], error)
	ListByPlayer(ctx context.Context, playerID int64) ([]model.Goal, error)
	Update(ctx context.Context, g model.Goal) (model.Goal, error)
	Delete(ctx context.Context, id int64) error
	DeleteByMatch(ctx context.Context, matchID int64) error
	ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Goal, error)
	CountByPlayerInRange(ctx context.Context, playerID int64, from, to time.Time) (int, error)
}

// ParticipationRepository declares operations on lineup rows (match_players).
// Rows are keyed by (matchID, playerID); Get returns ErrNotFound when absent,
// which the scorer table treats as "exclude this goal", not as a failure.
type ParticipationRepository interface {
	Upsert(ctx context.Context, p model.Participation) (model.Participation, error)
	Get(ctx context.Context, matchID, playerID int64) (model.Participation, error)
	Exists(ctx context.Context, matchID, playerID int64) (bool, error)
	DeleteByMatch(ctx context.Context, matchID int64) error
	DeleteByMatchAndTeam(ctx context.Context, matchID, teamID int64) error
	CountByPlayerInRange(ctx context.Context, playerID int64, from, to time.Time) (int, error)
}
