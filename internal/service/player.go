package service

import (
	"context"
	"errors"
	"time"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

type playerService struct {
	players repository.PlayerRepository
	teams   repository.TeamRepository
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, teams repository.TeamRepository, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, teams: teams, log: l}
}

func (s *playerService) CreatePlayer(ctx context.Context, firstName, lastName string, teamID *int64) (model.Player, error) {
	start := time.Now()

	var ferrs []FieldError
	firstName = validateName("first_name", firstName, 60, &ferrs)
	lastName = validateName("last_name", lastName, 60, &ferrs)
	if teamID != nil && *teamID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team_id", Message: "must be > 0"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("player validation failed")
		return model.Player{}, err
	}

	// A nil teamID is allowed: players may be created as free agents.
	if teamID != nil {
		if _, err := s.teams.GetByID(ctx, *teamID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return model.Player{}, NewInvalidInputError([]FieldError{{Field: "team_id", Message: "team does not exist"}})
			}
			return model.Player{}, err
		}
	}

	out, err := s.players.Create(ctx, model.Player{FirstName: firstName, LastName: lastName, TeamID: teamID})
	if err != nil {
		s.log.Error().Err(err).Str("fn", firstName).Str("ln", lastName).Msg("create player failed")
		return model.Player{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("player_id", out.ID).Msg("player created")
	return out, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	if id <= 0 {
		return model.Player{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.players.GetByID(ctx, id)
}

func (s *playerService) ListPlayers(ctx context.Context, page repository.Page) (repository.PageResult[model.Player], error) {
	p := normalizePage(page)
	res, err := s.players.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list players failed")
		return repository.PageResult[model.Player]{}, err
	}
	return res, nil
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int64, page repository.Page) (repository.PageResult[model.Player], error) {
	if teamID <= 0 {
		return repository.PageResult[model.Player]{}, NewInvalidInputError([]FieldError{{Field: "team_id", Message: "must be > 0"}})
	}
	p := normalizePage(page)
	res, err := s.players.ListByTeam(ctx, teamID, p)
	if err != nil {
		s.log.Error().Err(err).Int64("team_id", teamID).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list players failed")
		return repository.PageResult[model.Player]{}, err
	}
	return res, nil
}

func (s *playerService) PatchPlayer(ctx context.Context, id int64, patch PlayerPatch) (model.Player, error) {
	if id <= 0 {
		return model.Player{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		return model.Player{}, err
	}

	var ferrs []FieldError
	if patch.FirstName != nil {
		player.FirstName = validateName("first_name", *patch.FirstName, 60, &ferrs)
	}
	if patch.LastName != nil {
		player.LastName = validateName("last_name", *patch.LastName, 60, &ferrs)
	}
	if patch.TeamID != nil {
		// Transfers only change the current team; historical participation
		// rows keep pointing at the team the player actually played for.
		if _, err := s.teams.GetByID(ctx, *patch.TeamID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				ferrs = append(ferrs, FieldError{Field: "team_id", Message: "team does not exist"})
			} else {
				return model.Player{}, err
			}
		}
		player.TeamID = patch.TeamID
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Player{}, err
	}

	return s.players.Update(ctx, player)
}

func (s *playerService) DeletePlayer(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if err := s.players.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("player_id", id).Msg("player deleted")
	return nil
}
