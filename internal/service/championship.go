package service

import (
	"context"
	"strings"
	"time"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

type championshipService struct {
	repo repository.ChampionshipRepository
	log  zerolog.Logger
}

func NewChampionshipService(repo repository.ChampionshipRepository, logger zerolog.Logger) ChampionshipService {
	l := logger.With().Str("module", "service").Str("component", "championship").Logger()
	return &championshipService{repo: repo, log: l}
}

func validateChampionshipDates(start, end *time.Time, ferrs *[]FieldError) {
	if start != nil && end != nil && end.Before(*start) {
		*ferrs = append(*ferrs, FieldError{Field: "end_date", Message: "must not precede start_date"})
	}
}

func (s *championshipService) CreateChampionship(ctx context.Context, name string, startDate, endDate *time.Time) (model.Championship, error) {
	name = strings.TrimSpace(name)

	var ferrs []FieldError
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if ln := len([]rune(name)); ln > 100 {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be <= 100"})
	}
	validateChampionshipDates(startDate, endDate, &ferrs)
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("championship validation failed")
		return model.Championship{}, err
	}

	out, err := s.repo.Create(ctx, model.Championship{Name: name, StartDate: startDate, EndDate: endDate})
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("create championship failed")
		return model.Championship{}, err
	}
	s.log.Info().Int64("championship_id", out.ID).Msg("championship created")
	return out, nil
}

func (s *championshipService) GetChampionship(ctx context.Context, id int64) (model.Championship, error) {
	if id <= 0 {
		return model.Championship{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *championshipService) ListChampionships(ctx context.Context, page repository.Page) (repository.PageResult[model.Championship], error) {
	p := normalizePage(page)
	res, err := s.repo.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list championships failed")
		return repository.PageResult[model.Championship]{}, err
	}
	return res, nil
}

func (s *championshipService) PatchChampionship(ctx context.Context, id int64, patch ChampionshipPatch) (model.Championship, error) {
	if id <= 0 {
		return model.Championship{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	champ, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Championship{}, err
	}

	var ferrs []FieldError
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" || len([]rune(name)) > 100 {
			ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 1 and 100"})
		}
		champ.Name = name
	}
	if patch.StartDate != nil {
		champ.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		champ.EndDate = patch.EndDate
	}
	validateChampionshipDates(champ.StartDate, champ.EndDate, &ferrs)
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Championship{}, err
	}

	return s.repo.Update(ctx, champ)
}

func (s *championshipService) DeleteChampionship(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("championship_id", id).Msg("championship deleted")
	return nil
}
