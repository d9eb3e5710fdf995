package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

// teamService holds team use-case logic: validation + orchestration, no transport / SQL details.
type teamService struct {
	repo    repository.TeamRepository
	coaches repository.CoachRepository
	log     zerolog.Logger
}

func NewTeamService(repo repository.TeamRepository, coaches repository.CoachRepository, logger zerolog.Logger) TeamService {
	l := logger.With().Str("module", "service").Str("component", "team").Logger()
	return &teamService{repo: repo, coaches: coaches, log: l}
}

func (s *teamService) CreateTeam(ctx context.Context, name, country string, coachID *int64) (model.Team, error) {
	start := time.Now()
	name = strings.TrimSpace(name)
	country = strings.TrimSpace(country)

	var ferrs []FieldError
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if ln := len([]rune(name)); ln < 2 || ln > 60 {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 60"})
	}
	if ln := len([]rune(country)); ln > 60 {
		ferrs = append(ferrs, FieldError{Field: "country", Message: "length must be <= 60"})
	}
	if coachID != nil && *coachID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "coach_id", Message: "must be > 0"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("team validation failed")
		return model.Team{}, err
	}

	// Existence check improves client UX vs deferring to FK violation.
	if coachID != nil {
		if _, err := s.coaches.GetByID(ctx, *coachID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return model.Team{}, NewInvalidInputError([]FieldError{{Field: "coach_id", Message: "coach does not exist"}})
			}
			return model.Team{}, err
		}
	}

	out, err := s.repo.Create(ctx, model.Team{Name: name, Country: country, CoachID: coachID})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", name).Msg("create team failed")
		return model.Team{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("team_id", out.ID).Msg("team created")
	return out, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int64) (model.Team, error) {
	if id <= 0 {
		return model.Team{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *teamService) ListTeams(ctx context.Context, page repository.Page) (repository.PageResult[model.Team], error) {
	p := normalizePage(page)
	res, err := s.repo.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list teams failed")
		return repository.PageResult[model.Team]{}, err
	}
	return res, nil
}

func (s *teamService) PatchTeam(ctx context.Context, id int64, patch TeamPatch) (model.Team, error) {
	if id <= 0 {
		return model.Team{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Team{}, err
	}

	var ferrs []FieldError
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if ln := len([]rune(name)); name == "" || ln < 2 || ln > 60 {
			ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 60"})
		}
		team.Name = name
	}
	if patch.Country != nil {
		team.Country = strings.TrimSpace(*patch.Country)
	}
	if patch.CoachID != nil {
		if _, err := s.coaches.GetByID(ctx, *patch.CoachID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				ferrs = append(ferrs, FieldError{Field: "coach_id", Message: "coach does not exist"})
			} else {
				return model.Team{}, err
			}
		}
		team.CoachID = patch.CoachID
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Team{}, err
	}

	return s.repo.Update(ctx, team)
}

func (s *teamService) DeleteTeam(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	// Referencing matches or players surface as ErrConflict from the repository.
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("team_id", id).Msg("team deleted")
	return nil
}
