package service

import (
	"context"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

type goalService struct {
	goals   repository.GoalRepository
	matches repository.MatchRepository
	players repository.PlayerRepository
	lineups repository.ParticipationRepository
	tx      repository.TxManager
	log     zerolog.Logger
}

func NewGoalService(
	goals repository.GoalRepository,
	matches repository.MatchRepository,
	players repository.PlayerRepository,
	lineups repository.ParticipationRepository,
	tx repository.TxManager,
	logger zerolog.Logger,
) GoalService {
	l := logger.With().Str("module", "service").Str("component", "goal").Logger()
	return &goalService{goals: goals, matches: matches, players: players, lineups: lineups, tx: tx, log: l}
}

func (s *goalService) CreateGoal(ctx context.Context, matchID, playerID int64, minute int) (model.Goal, error) {
	var ferrs []FieldError
	if matchID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "match_id", Message: "must be > 0"})
	}
	if playerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "must be > 0"})
	}
	if !validMinute(minute) {
		ferrs = append(ferrs, FieldError{Field: "minute", Message: "must be in [0..120]"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Goal{}, err
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return model.Goal{}, err
	}
	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return model.Goal{}, err
	}

	var out model.Goal
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureParticipation(ctx, match, player); err != nil {
			return err
		}
		created, err := s.goals.Create(ctx, model.Goal{MatchID: matchID, PlayerID: playerID, Minute: minute})
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int64("match_id", matchID).Int64("player_id", playerID).Msg("create goal failed")
		return model.Goal{}, err
	}
	s.log.Info().Int64("goal_id", out.ID).Int64("match_id", matchID).Int64("player_id", playerID).Msg("goal recorded")
	return out, nil
}

func (s *goalService) GetGoal(ctx context.Context, id int64) (model.Goal, error) {
	if id <= 0 {
		return model.Goal{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.goals.GetByID(ctx, id)
}

func (s *goalService) ListGoals(ctx context.Context, page repository.Page) (repository.PageResult[model.Goal], error) {
	p := normalizePage(page)
	res, err := s.goals.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list goals failed")
		return repository.PageResult[model.Goal]{}, err
	}
	return res, nil
}

func (s *goalService) ListGoalsByPlayer(ctx context.Context, playerID int64) ([]model.Goal, error) {
	if playerID <= 0 {
		return nil, NewInvalidInputError([]FieldError{{Field: "player_id", Message: "must be > 0"}})
	}
	return s.goals.ListByPlayer(ctx, playerID)
}

func (s *goalService) PatchGoal(ctx context.Context, id int64, patch GoalPatch) (model.Goal, error) {
	if id <= 0 {
		return model.Goal{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	goal, err := s.goals.GetByID(ctx, id)
	if err != nil {
		return model.Goal{}, err
	}

	if patch.Minute != nil {
		if !validMinute(*patch.Minute) {
			return model.Goal{}, NewInvalidInputError([]FieldError{{Field: "minute", Message: "must be in [0..120]"}})
		}
		goal.Minute = *patch.Minute
	}
	if patch.MatchID != nil {
		goal.MatchID = *patch.MatchID
	}
	if patch.PlayerID != nil {
		goal.PlayerID = *patch.PlayerID
	}

	match, err := s.matches.GetByID(ctx, goal.MatchID)
	if err != nil {
		return model.Goal{}, err
	}
	player, err := s.players.GetByID(ctx, goal.PlayerID)
	if err != nil {
		return model.Goal{}, err
	}

	var out model.Goal
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureParticipation(ctx, match, player); err != nil {
			return err
		}
		updated, err := s.goals.Update(ctx, goal)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return model.Goal{}, err
	}
	return out, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if err := s.goals.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("goal_id", id).Msg("goal deleted")
	return nil
}

// ensureParticipation backfills the match_players row for a scorer who was
// never listed in a lineup: starting=false, minutes unknown. The team is
// resolved from the player's CURRENT team, which must be one of the match
// sides — this is the write-side counterpart of the participation authority
// the scorer table reads.
func (s *goalService) ensureParticipation(ctx context.Context, match model.Match, player model.Player) error {
	if player.TeamID == nil {
		return NewInvalidInputError([]FieldError{{Field: "player_id", Message: "player has no team"}})
	}
	teamID := *player.TeamID
	if teamID != match.Team1ID && teamID != match.Team2ID {
		return NewInvalidInputError([]FieldError{{
			Field:   "player_id",
			Message: "player does not belong to either team in this match",
		}})
	}

	exists, err := s.lineups.Exists(ctx, match.ID, player.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = s.lineups.Upsert(ctx, model.Participation{
		MatchID:  match.ID,
		PlayerID: player.ID,
		TeamID:   teamID,
		Starting: false,
	})
	return err
}
