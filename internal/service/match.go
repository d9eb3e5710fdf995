package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

type matchService struct {
	matches       repository.MatchRepository
	teams         repository.TeamRepository
	players       repository.PlayerRepository
	championships repository.ChampionshipRepository
	lineups       repository.ParticipationRepository
	goals         repository.GoalRepository
	tx            repository.TxManager
	log           zerolog.Logger
}

func NewMatchService(
	matches repository.MatchRepository,
	teams repository.TeamRepository,
	players repository.PlayerRepository,
	championships repository.ChampionshipRepository,
	lineups repository.ParticipationRepository,
	goals repository.GoalRepository,
	tx repository.TxManager,
	logger zerolog.Logger,
) MatchService {
	l := logger.With().Str("module", "service").Str("component", "match").Logger()
	return &matchService{
		matches:       matches,
		teams:         teams,
		players:       players,
		championships: championships,
		lineups:       lineups,
		goals:         goals,
		tx:            tx,
		log:           l,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, in CreateMatchInput) (model.Match, error) {
	start := time.Now()

	var ferrs []FieldError
	if in.Team1ID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team1_id", Message: "must be > 0"})
	}
	if in.Team2ID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team2_id", Message: "must be > 0"})
	}
	if in.Team1ID > 0 && in.Team1ID == in.Team2ID {
		ferrs = append(ferrs, FieldError{Field: "teams", Message: "team1_id and team2_id must be different"})
	}
	if in.MatchDate.IsZero() {
		ferrs = append(ferrs, FieldError{Field: "match_date", Message: "must be set"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("match validation failed (structure)")
		return model.Match{}, err
	}

	// Existence checks before attempting persistence.
	var existenceErrs []FieldError
	if _, err := s.teams.GetByID(ctx, in.Team1ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			existenceErrs = append(existenceErrs, FieldError{Field: "team1_id", Message: "team does not exist"})
		} else {
			return model.Match{}, err
		}
	}
	if _, err := s.teams.GetByID(ctx, in.Team2ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			existenceErrs = append(existenceErrs, FieldError{Field: "team2_id", Message: "team does not exist"})
		} else {
			return model.Match{}, err
		}
	}
	if in.ChampionshipID != nil {
		if _, err := s.championships.GetByID(ctx, *in.ChampionshipID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				existenceErrs = append(existenceErrs, FieldError{Field: "championship_id", Message: "championship does not exist"})
			} else {
				return model.Match{}, err
			}
		}
	}
	if err := NewInvalidInputError(existenceErrs); err != nil {
		s.log.Debug().Interface("field_errors", existenceErrs).Msg("match validation failed (existence)")
		return model.Match{}, err
	}

	exists, err := s.matches.ExistsByTeamsAndDate(ctx, in.Team1ID, in.Team2ID, in.MatchDate)
	if err != nil {
		return model.Match{}, err
	}
	if exists {
		return model.Match{}, repository.ErrAlreadyExists
	}

	// Match row plus both lineups are one unit of work.
	var out model.Match
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.matches.Create(ctx, model.Match{
			Team1ID:        in.Team1ID,
			Team2ID:        in.Team2ID,
			MatchDate:      in.MatchDate,
			ChampionshipID: in.ChampionshipID,
		})
		if err != nil {
			return err
		}
		if err := s.saveLineup(ctx, created, created.Team1ID, in.LineupTeam1); err != nil {
			return err
		}
		if err := s.saveLineup(ctx, created, created.Team2ID, in.LineupTeam2); err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int64("team1_id", in.Team1ID).Int64("team2_id", in.Team2ID).Msg("create match failed")
		return model.Match{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("match_id", out.ID).Msg("match created")
	return out, nil
}

func (s *matchService) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	if id <= 0 {
		return model.Match{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.matches.GetByID(ctx, id)
}

func (s *matchService) ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.Match], error) {
	p := normalizePage(page)
	res, err := s.matches.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list matches failed")
		return repository.PageResult[model.Match]{}, err
	}
	return res, nil
}

func (s *matchService) PatchMatch(ctx context.Context, id int64, patch MatchPatch) (model.Match, error) {
	if id <= 0 {
		return model.Match{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if patch.Team1ID != nil && patch.Team2ID != nil && *patch.Team1ID == *patch.Team2ID {
		return model.Match{}, NewInvalidInputError([]FieldError{{Field: "teams", Message: "team1_id and team2_id must be different"}})
	}

	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return model.Match{}, err
	}

	var out model.Match
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Swapping a side out drops that side's previous lineup: those rows
		// belong to the departing team, not the match slot.
		if patch.Team1ID != nil {
			if _, err := s.teams.GetByID(ctx, *patch.Team1ID); err != nil {
				return err
			}
			if *patch.Team1ID != match.Team1ID {
				if err := s.lineups.DeleteByMatchAndTeam(ctx, match.ID, match.Team1ID); err != nil {
					return err
				}
			}
			match.Team1ID = *patch.Team1ID
		}
		if patch.Team2ID != nil {
			if _, err := s.teams.GetByID(ctx, *patch.Team2ID); err != nil {
				return err
			}
			if *patch.Team2ID != match.Team2ID {
				if err := s.lineups.DeleteByMatchAndTeam(ctx, match.ID, match.Team2ID); err != nil {
					return err
				}
			}
			match.Team2ID = *patch.Team2ID
		}
		if match.Team1ID == match.Team2ID {
			return NewInvalidInputError([]FieldError{{Field: "teams", Message: "team1_id and team2_id must be different"}})
		}
		if patch.MatchDate != nil {
			match.MatchDate = *patch.MatchDate
		}
		if patch.ChampionshipID != nil {
			if _, err := s.championships.GetByID(ctx, *patch.ChampionshipID); err != nil {
				return err
			}
			match.ChampionshipID = patch.ChampionshipID
		}

		updated, err := s.matches.Update(ctx, match)
		if err != nil {
			return err
		}
		if patch.LineupTeam1 != nil {
			if err := s.saveLineup(ctx, updated, updated.Team1ID, patch.LineupTeam1); err != nil {
				return err
			}
		}
		if patch.LineupTeam2 != nil {
			if err := s.saveLineup(ctx, updated, updated.Team2ID, patch.LineupTeam2); err != nil {
				return err
			}
		}
		out = updated
		return nil
	})
	if err != nil {
		return model.Match{}, err
	}
	return out, nil
}

func (s *matchService) SetResult(ctx context.Context, id int64, team1Score, team2Score int) (model.Match, error) {
	var ferrs []FieldError
	if id <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if team1Score < 0 {
		ferrs = append(ferrs, FieldError{Field: "team1_score", Message: "must be >= 0"})
	}
	if team2Score < 0 {
		ferrs = append(ferrs, FieldError{Field: "team2_score", Message: "must be >= 0"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Match{}, err
	}

	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return model.Match{}, err
	}
	match.Team1Score = team1Score
	match.Team2Score = team2Score
	out, err := s.matches.Update(ctx, match)
	if err != nil {
		s.log.Error().Err(err).Int64("match_id", id).Msg("set result failed")
		return model.Match{}, err
	}
	s.log.Info().Int64("match_id", id).Int("team1_score", team1Score).Int("team2_score", team2Score).Msg("match result recorded")
	return out, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	// Goals and participation rows go with the match.
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.lineups.DeleteByMatch(ctx, id); err != nil {
			return err
		}
		if err := s.goals.DeleteByMatch(ctx, id); err != nil {
			return err
		}
		return s.matches.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info().Int64("match_id", id).Msg("match deleted")
	return nil
}

// saveLineup validates and replaces one side's lineup. Every listed player
// must currently belong to the team; minutes are bounded like goal minutes.
func (s *matchService) saveLineup(ctx context.Context, match model.Match, teamID int64, lineup []LineupItem) error {
	if lineup == nil {
		return nil
	}

	seen := make(map[int64]struct{}, len(lineup))
	for _, item := range lineup {
		if item.PlayerID <= 0 {
			return NewInvalidInputError([]FieldError{{Field: "lineup", Message: "player_id is required in lineup"}})
		}
		if _, dup := seen[item.PlayerID]; dup {
			return NewInvalidInputError([]FieldError{{Field: "lineup", Message: fmt.Sprintf("duplicate player_id: %d", item.PlayerID)}})
		}
		seen[item.PlayerID] = struct{}{}
		if item.MinutesPlayed != nil && !validMinute(*item.MinutesPlayed) {
			return NewInvalidInputError([]FieldError{{Field: "lineup", Message: "minutes_played must be in [0..120]"}})
		}

		p, err := s.players.GetByID(ctx, item.PlayerID)
		if err != nil {
			return err
		}
		if p.TeamID == nil || *p.TeamID != teamID {
			return NewInvalidInputError([]FieldError{{
				Field:   "lineup",
				Message: fmt.Sprintf("player %d does not belong to team %d", item.PlayerID, teamID),
			}})
		}
	}

	if err := s.lineups.DeleteByMatchAndTeam(ctx, match.ID, teamID); err != nil {
		return err
	}
	for _, item := range lineup {
		starting := true
		if item.Starting != nil {
			starting = *item.Starting
		}
		if _, err := s.lineups.Upsert(ctx, model.Participation{
			MatchID:       match.ID,
			PlayerID:      item.PlayerID,
			TeamID:        teamID,
			Starting:      starting,
			MinutesPlayed: item.MinutesPlayed,
		}); err != nil {
			return err
		}
	}
	return nil
}
