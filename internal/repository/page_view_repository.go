package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/royaldevs/backend/internal/model"
)

// PageViewRepository stores analytics page views.
type PageViewRepository interface {
	Create(ctx context.Context, pv *model.PageView) error
}

type pgPageViewRepository struct {
	pool *pgxpool.Pool
}

// NewPgPageViewRepository returns a PostgreSQL-backed PageViewRepository.
func NewPgPageViewRepository(pool *pgxpool.Pool) PageViewRepository {
	return &pgPageViewRepository{pool: pool}
}

func (r *pgPageViewRepository) Create(ctx context.Context, pv *model.PageView) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO page_views (page_path, visitor_id, user_agent, referrer)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		pv.PagePath, pv.VisitorID, pv.UserAgent, pv.Referrer,
	).Scan(&pv.ID, &pv.CreatedAt)
}
