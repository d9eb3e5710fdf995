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

type matchRepository struct{ pool *pgxpool.Pool }

func NewMatchRepository(pool *pgxpool.Pool) repository.MatchRepository {
	return &matchRepository{pool: pool}
}

const matchColumns = `id, team1_id, team2_id, team1_score, team2_score, match_date, championship_id, created_at, updated_at`

func scanMatch(row pgx.Row) (model.Match, error) {
	var m model.Match
	err := row.Scan(&m.ID, &m.Team1ID, &m.Team2ID, &m.Team1Score, &m.Team2Score, &m.MatchDate, &m.ChampionshipID, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *matchRepository) Create(ctx context.Context, m model.Match) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO matches (team1_id, team2_id, team1_score, team2_score, match_date, championship_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+matchColumns,
		m.Team1ID, m.Team2ID, m.Team1Score, m.Team2Score, m.MatchDate, m.ChampionshipID,
	)
	out, err := scanMatch(row)
	if err != nil {
		return model.Match{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int64) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanMatch(exec.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, repository.ErrNotFound
		}
		return model.Match{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *matchRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Match], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Match]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+matchColumns+`, COUNT(*) OVER() AS total
		 FROM matches
		 ORDER BY match_date DESC, id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Match]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Match]{Items: make([]model.Match, 0, limit)}
	for rows.Next() {
		var m model.Match
		var total int
		if err := rows.Scan(&m.ID, &m.Team1ID, &m.Team2ID, &m.Team1Score, &m.Team2Score, &m.MatchDate, &m.ChampionshipID, &m.CreatedAt, &m.UpdatedAt, &total); err != nil {
			return repository.PageResult[model.Match]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, m)
		res.Total = total
	}
	return res, nil
}

func (r *matchRepository) Update(ctx context.Context, m model.Match) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE matches
		 SET team1_id = $2, team2_id = $3, team1_score = $4, team2_score = $5, match_date = $6, championship_id = $7, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+matchColumns,
		m.ID, m.Team1ID, m.Team2ID, m.Team1Score, m.Team2Score, m.MatchDate, m.ChampionshipID,
	)
	out, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, repository.ErrNotFound
		}
		return model.Match{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *matchRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *matchRepository) ExistsByTeamsAndDate(ctx context.Context, team1ID, team2ID int64, date time.Time) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	exec := getQ(ctx, r.pool)
	err := exec.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM matches WHERE team1_id = $1 AND team2_id = $2 AND match_date = $3)`,
		team1ID, team2ID, date,
	).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

// ListByDateRange returns matches with match_date in the half-open range [from, to).
// The stats core relies on this boundary: a match dated exactly at `to` belongs
// to the next window.
func (r *matchRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Match, error) {
	return r.listRange(ctx,
		`SELECT `+matchColumns+` FROM matches
		 WHERE match_date >= $1 AND match_date < $2
		 ORDER BY match_date, id`,
		from, to)
}

func (r *matchRepository) ListByTeamAndDateRange(ctx context.Context, teamID int64, from, to time.Time) ([]model.Match, error) {
	return r.listRange(ctx,
		`SELECT `+matchColumns+` FROM matches
		 WHERE (team1_id = $3 OR team2_id = $3) AND match_date >= $1 AND match_date < $2
		 ORDER BY match_date, id`,
		from, to, teamID)
}

func (r *matchRepository) listRange(ctx context.Context, query string, args ...any) ([]model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	res := make([]model.Match, 0, 16)
	for rows.Next() {
		var m model.Match
		if err := rows.Scan(&m.ID, &m.Team1ID, &m.Team2ID, &m.Team1Score, &m.Team2Score, &m.MatchDate, &m.ChampionshipID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, m)
	}
	return res, nil
}

var _ repository.MatchRepository = (*matchRepository)(nil)
