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

type goalRepository struct{ pool *pgxpool.Pool }

func NewGoalRepository(pool *pgxpool.Pool) repository.GoalRepository {
	return &goalRepository{pool: pool}
}

const goalColumns = `id, match_id, player_id, minute, created_at, updated_at`

func (r *goalRepository) Create(ctx context.Context, g model.Goal) (model.Goal, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Goal{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO goals (match_id, player_id, minute) VALUES ($1, $2, $3)
		 RETURNING `+goalColumns,
		g.MatchID, g.PlayerID, g.Minute,
	)
	var out model.Goal
	if err := row.Scan(&out.ID, &out.MatchID, &out.PlayerID, &out.Minute, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.Goal{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *goalRepository) GetByID(ctx context.Context, id int64) (model.Goal, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Goal{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, id)
	var out model.Goal
	if err := row.Scan(&out.ID, &out.MatchID, &out.PlayerID, &out.Minute, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Goal{}, repository.ErrNotFound
		}
		return model.Goal{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *goalRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Goal], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Goal]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+goalColumns+`, COUNT(*) OVER() AS total
		 FROM goals
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Goal]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Goal]{Items: make([]model.Goal, 0, limit)}
	for rows.Next() {
		var g model.Goal
		var total int
		if err := rows.Scan(&g.ID, &g.MatchID, &g.PlayerID, &g.Minute, &g.CreatedAt, &g.UpdatedAt, &total); err != nil {
			return repository.PageResult[model.Goal]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, g)
		res.Total = total
	}
	return res, nil
}

func (r *goalRepository) ListByPlayer(ctx context.Context, playerID int64) ([]model.Goal, error) {
	return r.listAll(ctx, `SELECT `+goalColumns+` FROM goals WHERE player_id = $1 ORDER BY id`, playerID)
}

func (r *goalRepository) Update(ctx context.Context, g model.Goal) (model.Goal, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Goal{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE goals SET match_id = $2, player_id = $3, minute = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+goalColumns,
		g.ID, g.MatchID, g.PlayerID, g.Minute,
	)
	var out model.Goal
	if err := row.Scan(&out.ID, &out.MatchID, &out.PlayerID, &out.Minute, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Goal{}, repository.ErrNotFound
		}
		return model.Goal{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *goalRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *goalRepository) DeleteByMatch(ctx context.Context, matchID int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM goals WHERE match_id = $1`, matchID); err != nil {
		return repository.MapPgError(err)
	}
	return nil
}

// ListByDateRange joins through matches so the goal window matches the match
// window exactly; [from, to) half-open on match_date.
func (r *goalRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Goal, error) {
	return r.listAll(ctx,
		`SELECT g.id, g.match_id, g.player_id, g.minute, g.created_at, g.updated_at
		 FROM goals g
		 JOIN matches m ON m.id = g.match_id
		 WHERE m.match_date >= $1 AND m.match_date < $2
		 ORDER BY g.id`,
		from, to)
}

func (r *goalRepository) CountByPlayerInRange(ctx context.Context, playerID int64, from, to time.Time) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var count int
	exec := getQ(ctx, r.pool)
	err := exec.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM goals g
		 JOIN matches m ON m.id = g.match_id
		 WHERE g.player_id = $1 AND m.match_date >= $2 AND m.match_date < $3`,
		playerID, from, to,
	).Scan(&count)
	if err != nil {
		return 0, repository.MapPgError(err)
	}
	return count, nil
}

func (r *goalRepository) listAll(ctx context.Context, query string, args ...any) ([]model.Goal, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	res := make([]model.Goal, 0, 16)
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.MatchID, &g.PlayerID, &g.Minute, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, g)
	}
	return res, nil
}

var _ repository.GoalRepository = (*goalRepository)(nil)
