package service

import (
	"context"
	"errors"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

// statsService computes derived statistics on demand from the raw stores.
// It holds no state between requests: every fold table is request-local, so
// concurrent queries never interfere. Reads happen first, the publish handoff
// last — a result is only ever published after it is fully computed.
type statsService struct {
	teams   repository.TeamRepository
	players repository.PlayerRepository
	matches repository.MatchRepository
	goals   repository.GoalRepository
	lineups repository.ParticipationRepository
	pub     StatsPublisher
	log     zerolog.Logger
}

func NewStatsService(
	teams repository.TeamRepository,
	players repository.PlayerRepository,
	matches repository.MatchRepository,
	goals repository.GoalRepository,
	lineups repository.ParticipationRepository,
	pub StatsPublisher,
	logger zerolog.Logger,
) StatsService {
	l := logger.With().Str("module", "service").Str("component", "stats").Logger()
	return &statsService{
		teams:   teams,
		players: players,
		matches: matches,
		goals:   goals,
		lineups: lineups,
		pub:     pub,
		log:     l,
	}
}

// TeamStats classifies each of the team's matches in the window by comparing
// the team's own score against the opponent's.
func (s *statsService) TeamStats(ctx context.Context, teamID int64, year *int) (model.TeamStat, error) {
	if teamID <= 0 {
		return model.TeamStat{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return model.TeamStat{}, err // ErrNotFound propagates untouched
	}

	from, to := resolveWindow(year)
	matches, err := s.matches.ListByTeamAndDateRange(ctx, teamID, from, to)
	if err != nil {
		return model.TeamStat{}, err
	}

	stat := model.TeamStat{TeamID: teamID, Year: year, Played: len(matches)}
	for _, m := range matches {
		forTeam, against := m.Team1Score, m.Team2Score
		if m.Team2ID == teamID {
			forTeam, against = against, forTeam
		}
		switch {
		case forTeam > against:
			stat.Wins++
		case forTeam == against:
			stat.Draws++
		default:
			stat.Losses++
		}
	}

	s.pub.PublishTeamStats(ctx, stat)
	return stat, nil
}

// PlayerStats counts participations and goals independently. The two counts
// come from different stores and are NOT reconciled: a goal without a
// participation row still counts here (but not in TopScorers).
func (s *statsService) PlayerStats(ctx context.Context, playerID int64, year *int) (model.PlayerStat, error) {
	if playerID <= 0 {
		return model.PlayerStat{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		return model.PlayerStat{}, err
	}

	from, to := resolveWindow(year)
	matchesPlayed, err := s.lineups.CountByPlayerInRange(ctx, playerID, from, to)
	if err != nil {
		return model.PlayerStat{}, err
	}
	goals, err := s.goals.CountByPlayerInRange(ctx, playerID, from, to)
	if err != nil {
		return model.PlayerStat{}, err
	}

	avg := 0.0
	if matchesPlayed > 0 {
		avg = float64(goals) / float64(matchesPlayed)
	}
	stat := model.PlayerStat{
		PlayerID:         playerID,
		Year:             year,
		MatchesPlayed:    matchesPlayed,
		Goals:            goals,
		AvgGoalsPerMatch: avg,
	}

	s.pub.PublishPlayerStats(ctx, stat)
	return stat, nil
}

// TopTeams folds every match in the window into a per-team counter table and
// ranks it. The table is a fresh local map per call.
func (s *statsService) TopTeams(ctx context.Context, year *int, limit *int) ([]model.TeamStat, error) {
	from, to := resolveWindow(year)
	matches, err := s.matches.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	table := make(map[int64]*model.TeamStat)
	entry := func(teamID int64) *model.TeamStat {
		st, ok := table[teamID]
		if !ok {
			st = &model.TeamStat{TeamID: teamID, Year: year}
			table[teamID] = st
		}
		return st
	}

	for _, m := range matches {
		t1, t2 := entry(m.Team1ID), entry(m.Team2ID)
		t1.Played++
		t2.Played++
		switch {
		case m.Team1Score > m.Team2Score:
			t1.Wins++
			t2.Losses++
		case m.Team1Score < m.Team2Score:
			t2.Wins++
			t1.Losses++
		default:
			t1.Draws++
			t2.Draws++
		}
	}

	stats := make([]model.TeamStat, 0, len(table))
	for _, st := range table {
		stats = append(stats, *st)
	}
	ranked := rankTeams(stats, normalizeLimit(limit))

	s.pub.PublishTopTeams(ctx, ranked, year, limit)
	return ranked, nil
}

// TopScorers attributes each goal in the window to the team the player
// represented in that match, per the participation record. Goals without a
// participation row are excluded — a known data-quality gap, deliberately
// different from PlayerStats, which counts them.
func (s *statsService) TopScorers(ctx context.Context, teamID *int64, year *int, limit *int) ([]model.TopScorerEntry, error) {
	from, to := resolveWindow(year)
	goals, err := s.goals.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	type scorerKey struct {
		playerID int64
		teamID   int64
	}
	counts := make(map[scorerKey]int)
	for _, g := range goals {
		part, err := s.lineups.Get(ctx, g.MatchID, g.PlayerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.log.Debug().Int64("goal_id", g.ID).Int64("match_id", g.MatchID).Int64("player_id", g.PlayerID).
					Msg("goal without participation record excluded from scorer table")
				continue
			}
			return nil, err
		}
		if teamID != nil && part.TeamID != *teamID {
			continue
		}
		counts[scorerKey{playerID: g.PlayerID, teamID: part.TeamID}]++
	}

	rows := make([]model.TopScorerEntry, 0, len(counts))
	names := make(map[int64]*model.Player, len(counts))
	for key, n := range counts {
		player, ok := names[key.playerID]
		if !ok {
			p, err := s.players.GetByID(ctx, key.playerID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// scorer deleted since; drop all of their rows
					names[key.playerID] = nil
					continue
				}
				return nil, err
			}
			player = &p
			names[key.playerID] = player
		}
		if player == nil {
			continue
		}
		rows = append(rows, model.TopScorerEntry{
			PlayerID:  key.playerID,
			FirstName: player.FirstName,
			LastName:  player.LastName,
			TeamID:    key.teamID,
			Goals:     n,
		})
	}
	ranked := rankScorers(rows, normalizeLimit(limit))

	s.pub.PublishTopScorers(ctx, ranked, teamID, year, limit)
	return ranked, nil
}
