package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type participationRepository struct{ pool *pgxpool.Pool }

func NewParticipationRepository(pool *pgxpool.Pool) repository.ParticipationRepository {
	return &participationRepository{pool: pool}
}

const participationColumns = `match_id, player_id, team_id, is_starting, minutes_played, created_at, updated_at`

func (r *participationRepository) Upsert(ctx context.Context, p model.Participation) (model.Participation, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Participation{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO match_players (match_id, player_id, team_id, is_starting, minutes_played)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (match_id, player_id)
		 DO UPDATE SET
			team_id = EXCLUDED.team_id,
			is_starting = EXCLUDED.is_starting,
			minutes_played = EXCLUDED.minutes_played,
			updated_at = NOW()
		 RETURNING `+participationColumns,
		p.MatchID, p.PlayerID, p.TeamID, p.Starting, p.MinutesPlayed,
	)
	var out model.Participation
	if err := row.Scan(&out.MatchID, &out.PlayerID, &out.TeamID, &out.Starting, &out.MinutesPlayed, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.Participation{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *participationRepository) Get(ctx context.Context, matchID, playerID int64) (model.Participation, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Participation{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT `+participationColumns+` FROM match_players WHERE match_id = $1 AND player_id = $2`,
		matchID, playerID,
	)
	var out model.Participation
	if err := row.Scan(&out.MatchID, &out.PlayerID, &out.TeamID, &out.Starting, &out.MinutesPlayed, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Participation{}, repository.ErrNotFound
		}
		return model.Participation{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *participationRepository) Exists(ctx context.Context, matchID, playerID int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	exec := getQ(ctx, r.pool)
	err := exec.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM match_players WHERE match_id = $1 AND player_id = $2)`,
		matchID, playerID,
	).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

func (r *participationRepository) DeleteByMatch(ctx context.Context, matchID int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM match_players WHERE match_id = $1`, matchID); err != nil {
		return repository.MapPgError(err)
	}
	return nil
}

func (r *participationRepository) DeleteByMatchAndTeam(ctx context.Context, matchID, teamID int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM match_players WHERE match_id = $1 AND team_id = $2`, matchID, teamID); err != nil {
		return repository.MapPgError(err)
	}
	return nil
}

func (r *participationRepository) CountByPlayerInRange(ctx context.Context, playerID int64, from, to time.Time) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var count int
	exec := getQ(ctx, r.pool)
	err := exec.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM match_players mp
		 JOIN matches m ON m.id = mp.match_id
		 WHERE mp.player_id = $1 AND m.match_date >= $2 AND m.match_date < $3`,
		playerID, from, to,
	).Scan(&count)
	if err != nil {
		return 0, repository.MapPgError(err)
	}
	return count, nil
}

var _ repository.ParticipationRepository = (*participationRepository)(nil)
