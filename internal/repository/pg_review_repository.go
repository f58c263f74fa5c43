package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/royaldevs/backend/internal/model"
)

type pgReviewRepository struct {
	pool *pgxpool.Pool
}

// NewPgReviewRepository returns a PostgreSQL-backed ReviewRepository.
func NewPgReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &pgReviewRepository{pool: pool}
}

const reviewSelectCols = `id, COALESCE(user_id::text, ''), name, company, location, rating, text, is_approved, created_at`

func (r *pgReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO user_reviews (user_id, name, company, location, rating, text)
		 VALUES (NULLIF($1, '')::uuid, $2, $3, $4, $5, $6)
		 RETURNING id, is_approved, created_at`,
		review.UserID, review.Name, review.Company, review.Location, review.Rating, review.Text,
	).Scan(&review.ID, &review.IsApproved, &review.CreatedAt)
}

func (r *pgReviewRepository) ListApproved(ctx context.Context, limit int) ([]*model.Review, error) {
	return r.query(ctx,
		`SELECT `+reviewSelectCols+` FROM user_reviews WHERE is_approved = true
		 ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *pgReviewRepository) List(ctx context.Context, limit, offset int) ([]*model.Review, error) {
	return r.query(ctx,
		`SELECT `+reviewSelectCols+` FROM user_reviews
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *pgReviewRepository) query(ctx context.Context, sql string, args ...any) ([]*model.Review, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.Name, &rv.Company, &rv.Location, &rv.Rating, &rv.Text, &rv.IsApproved, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, &rv)
	}
	return reviews, rows.Err()
}

func (r *pgReviewRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE user_reviews SET is_approved = $1 WHERE id = $2`, approved, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgReviewRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM user_reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
