package postgres

import (
	"context"
	"errors"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type coachRepository struct{ pool *pgxpool.Pool }

func NewCoachRepository(pool *pgxpool.Pool) repository.CoachRepository {
	return &coachRepository{pool: pool}
}

func (r *coachRepository) Create(ctx context.Context, c model.Coach) (model.Coach, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Coach{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO coaches (first_name, last_name) VALUES ($1, $2)
		 RETURNING id, first_name, last_name, created_at, updated_at`,
		c.FirstName, c.LastName,
	)
	var out model.Coach
	if err := row.Scan(&out.ID, &out.FirstName, &out.LastName, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.Coach{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *coachRepository) GetByID(ctx context.Context, id int64) (model.Coach, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Coach{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, first_name, last_name, created_at, updated_at FROM coaches WHERE id = $1`, id,
	)
	var out model.Coach
	if err := row.Scan(&out.ID, &out.FirstName, &out.LastName, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Coach{}, repository.ErrNotFound
		}
		return model.Coach{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *coachRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Coach], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Coach]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, first_name, last_name, created_at, updated_at, COUNT(*) OVER() AS total
		 FROM coaches
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Coach]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Coach]{Items: make([]model.Coach, 0, limit)}
	for rows.Next() {
		var c model.Coach
		var total int
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return repository.PageResult[model.Coach]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, c)
		res.Total = total
	}
	return res, nil
}

func (r *coachRepository) Update(ctx context.Context, c model.Coach) (model.Coach, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Coach{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE coaches SET first_name = $2, last_name = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, first_name, last_name, created_at, updated_at`,
		c.ID, c.FirstName, c.LastName,
	)
	var out model.Coach
	if err := row.Scan(&out.ID, &out.FirstName, &out.LastName, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Coach{}, repository.ErrNotFound
		}
		return model.Coach{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *coachRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM coaches WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CoachRepository = (*coachRepository)(nil)
