package service

import (
	"context"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

type coachService struct {
	repo repository.CoachRepository
	log  zerolog.Logger
}

func NewCoachService(repo repository.CoachRepository, logger zerolog.Logger) CoachService {
	l := logger.With().Str("module", "service").Str("component", "coach").Logger()
	return &coachService{repo: repo, log: l}
}

func (s *coachService) CreateCoach(ctx context.Context, firstName, lastName string) (model.Coach, error) {
	var ferrs []FieldError
	firstName = validateName("first_name", firstName, 60, &ferrs)
	lastName = validateName("last_name", lastName, 60, &ferrs)
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("coach validation failed")
		return model.Coach{}, err
	}

	out, err := s.repo.Create(ctx, model.Coach{FirstName: firstName, LastName: lastName})
	if err != nil {
		s.log.Error().Err(err).Str("fn", firstName).Str("ln", lastName).Msg("create coach failed")
		return model.Coach{}, err
	}
	s.log.Info().Int64("coach_id", out.ID).Msg("coach created")
	return out, nil
}

func (s *coachService) GetCoach(ctx context.Context, id int64) (model.Coach, error) {
	if id <= 0 {
		return model.Coach{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *coachService) ListCoaches(ctx context.Context, page repository.Page) (repository.PageResult[model.Coach], error) {
	p := normalizePage(page)
	res, err := s.repo.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list coaches failed")
		return repository.PageResult[model.Coach]{}, err
	}
	return res, nil
}

func (s *coachService) PatchCoach(ctx context.Context, id int64, patch CoachPatch) (model.Coach, error) {
	if id <= 0 {
		return model.Coach{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	coach, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Coach{}, err
	}

	var ferrs []FieldError
	if patch.FirstName != nil {
		coach.FirstName = validateName("first_name", *patch.FirstName, 60, &ferrs)
	}
	if patch.LastName != nil {
		coach.LastName = validateName("last_name", *patch.LastName, 60, &ferrs)
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Coach{}, err
	}

	return s.repo.Update(ctx, coach)
}

func (s *coachService) DeleteCoach(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("coach_id", id).Msg("coach deleted")
	return nil
}
