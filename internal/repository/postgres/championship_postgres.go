package postgres

import (
	"context"
	"errors"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type championshipRepository struct{ pool *pgxpool.Pool }

func NewChampionshipRepository(pool *pgxpool.Pool) repository.ChampionshipRepository {
	return &championshipRepository{pool: pool}
}

func (r *championshipRepository) Create(ctx context.Context, c model.Championship) (model.Championship, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Championship{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO championships (name, start_date, end_date) VALUES ($1, $2, $3)
		 RETURNING id, name, start_date, end_date, created_at, updated_at`,
		c.Name, c.StartDate, c.EndDate,
	)
	var out model.Championship
	if err := row.Scan(&out.ID, &out.Name, &out.StartDate, &out.EndDate, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.Championship{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *championshipRepository) GetByID(ctx context.Context, id int64) (model.Championship, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Championship{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, name, start_date, end_date, created_at, updated_at FROM championships WHERE id = $1`, id,
	)
	var out model.Championship
	if err := row.Scan(&out.ID, &out.Name, &out.StartDate, &out.EndDate, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Championship{}, repository.ErrNotFound
		}
		return model.Championship{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *championshipRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Championship], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Championship]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, name, start_date, end_date, created_at, updated_at, COUNT(*) OVER() AS total
		 FROM championships
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Championship]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Championship]{Items: make([]model.Championship, 0, limit)}
	for rows.Next() {
		var c model.Championship
		var total int
		if err := rows.Scan(&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return repository.PageResult[model.Championship]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, c)
		res.Total = total
	}
	return res, nil
}

func (r *championshipRepository) Update(ctx context.Context, c model.Championship) (model.Championship, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Championship{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE championships SET name = $2, start_date = $3, end_date = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, start_date, end_date, created_at, updated_at`,
		c.ID, c.Name, c.StartDate, c.EndDate,
	)
	var out model.Championship
	if err := row.Scan(&out.ID, &out.Name, &out.StartDate, &out.EndDate, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Championship{}, repository.ErrNotFound
		}
		return model.Championship{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *championshipRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM championships WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ChampionshipRepository = (*championshipRepository)(nil)
