// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// CoachService defines coach-oriented use cases.
type CoachService interface {
	CreateCoach(ctx context.Context, firstName, lastName string) (model.Coach, error)
	GetCoach(ctx context.Context, id int64) (model.Coach, error)
	ListCoaches(ctx context.Context, page repository.Page) (repository.PageResult[model.Coach], error)
	PatchCoach(ctx context.Context, id int64, patch CoachPatch) (model.Coach, error)
	DeleteCoach(ctx context.Context, id int64) error
}

// TeamService defines team-oriented use cases.
type TeamService interface {
	CreateTeam(ctx context.Context, name, country string, coachID *int64) (model.Team, error)
	GetTeam(ctx context.Context, id int64) (model.Team, error)
	ListTeams(ctx context.Context, page repository.Page) (repository.PageResult[model.Team], error)
	PatchTeam(ctx context.Context, id int64, patch TeamPatch) (model.Team, error)
	DeleteTeam(ctx context.Context, id int64) error
}

// PlayerService defines player-oriented use cases.
type PlayerService interface {
	CreatePlayer(ctx context.Context, firstName, lastName string, teamID *int64) (model.Player, error)
	GetPlayer(ctx context.Context, id int64) (model.Player, error)
	ListPlayers(ctx context.Context, page repository.Page) (repository.PageResult[model.Player], error)
	ListPlayersByTeam(ctx context.Context, teamID int64, page repository.Page) (repository.PageResult[model.Player], error)
	PatchPlayer(ctx context.Context, id int64, patch PlayerPatch) (model.Player, error)
	DeletePlayer(ctx context.Context, id int64) error
}

// ChampionshipService defines championship-oriented use cases.
type ChampionshipService interface {
	CreateChampionship(ctx context.Context, name string, startDate, endDate *time.Time) (model.Championship, error)
	GetChampionship(ctx context.Context, id int64) (model.Championship, error)
	ListChampionships(ctx context.Context, page repository.Page) (repository.PageResult[model.Championship], error)
	PatchChampionship(ctx context.Context, id int64, patch ChampionshipPatch) (model.Championship, error)
	DeleteChampionship(ctx context.Context, id int64) error
}

// MatchService defines match use cases including lineup bookkeeping.
type MatchService interface {
	CreateMatch(ctx context.Context, in CreateMatchInput) (model.Match, error)
	GetMatch(ctx context.Context, id int64) (model.Match, error)
	ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.Match], error)
	PatchMatch(ctx context.Context, id int64, patch MatchPatch) (model.Match, error)
	SetResult(ctx context.Context, id int64, team1Score, team2Score int) (model.Match, error)
	DeleteMatch(ctx context.Context, id int64) error
}

// GoalService defines goal use cases; creating or re-pointing a goal keeps the
// participation record in sync (backfill).
type GoalService interface {
	CreateGoal(ctx context.Context, matchID, playerID int64, minute int) (model.Goal, error)
	GetGoal(ctx context.Context, id int64) (model.Goal, error)
	ListGoals(ctx context.Context, page repository.Page) (repository.PageResult[model.Goal], error)
	ListGoalsByPlayer(ctx context.Context, playerID int64) ([]model.Goal, error)
	PatchGoal(ctx context.Context, id int64, patch GoalPatch) (model.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error
}

// StatsService defines the derived statistics queries.
// A nil year means all time; a nil limit means the default of 10.
type StatsService interface {
	TeamStats(ctx context.Context, teamID int64, year *int) (model.TeamStat, error)
	PlayerStats(ctx context.Context, playerID int64, year *int) (model.PlayerStat, error)
	TopTeams(ctx context.Context, year *int, limit *int) ([]model.TeamStat, error)
	TopScorers(ctx context.Context, teamID *int64, year *int, limit *int) ([]model.TopScorerEntry, error)
}

// StatsPublisher forwards computed statistics to the event sink. Delivery is
// fire-and-forget: implementations never block the caller on broker I/O and
// never surface delivery errors (they log and drop).
type StatsPublisher interface {
	PublishTeamStats(ctx context.Context, stat model.TeamStat)
	PublishPlayerStats(ctx context.Context, stat model.PlayerStat)
	PublishTopTeams(ctx context.Context, table []model.TeamStat, year, limit *int)
	PublishTopScorers(ctx context.Context, rows []model.TopScorerEntry, teamID *int64, year, limit *int)
}

// Patch inputs: nil fields are left untouched.

type CoachPatch struct {
	FirstName *string
	LastName  *string
}

type TeamPatch struct {
	Name    *string
	Country *string
	CoachID *int64
}

type PlayerPatch struct {
	FirstName *string
	LastName  *string
	TeamID    *int64
}

type ChampionshipPatch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
}

// LineupItem is one player entry of a match lineup submission.
type LineupItem struct {
	PlayerID      int64
	Starting      *bool // default true
	MinutesPlayed *int
}

// CreateMatchInput carries everything needed to register a fixture.
type CreateMatchInput struct {
	Team1ID        int64
	Team2ID        int64
	MatchDate      time.Time
	ChampionshipID *int64
	LineupTeam1    []LineupItem
	LineupTeam2    []LineupItem
}

// MatchPatch updates a subset of match fields; replacing a team drops that
// side's previous lineup.
type MatchPatch struct {
	Team1ID        *int64
	Team2ID        *int64
	MatchDate      *time.Time
	ChampionshipID *int64
	LineupTeam1    []LineupItem
	LineupTeam2    []LineupItem
}

type GoalPatch struct {
	MatchID  *int64
	PlayerID *int64
	Minute   *int
}
