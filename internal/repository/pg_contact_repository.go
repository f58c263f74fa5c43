package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/royaldevs/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact requests.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	// Create inserts a row and populates req.ID and req.CreatedAt.
	Create(ctx context.Context, req *model.ContactRequest) error
	FindByID(ctx context.Context, id string) (*model.ContactRequest, error)
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

const contactSelectCols = `id, name, email, company, project_type, budget, message, status, created_at`

func scanContact(scan func(...any) error) (*model.ContactRequest, error) {
	var c model.ContactRequest
	if err := scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.ProjectType, &c.Budget, &c.Message, &c.Status, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new contact_requests row. Nil company/budget are stored as NULL.
// An empty status falls back to the column default (pending).
func (r *PgContactRepository) Create(ctx context.Context, req *model.ContactRequest) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_requests (name, email, company, project_type, budget, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6, COALESCE(NULLIF($7, ''), 'pending'))
		 RETURNING id, status, created_at`,
		req.Name, req.Email, req.Company, req.ProjectType, req.Budget, req.Message, req.Status,
	).Scan(&req.ID, &req.Status, &req.CreatedAt)
}

// FindByID returns ErrNotFound when no row has the given id.
func (r *PgContactRepository) FindByID(ctx context.Context, id string) (*model.ContactRequest, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+contactSelectCols+` FROM contact_requests WHERE id = $1`, id)
	c, err := scanContact(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// List returns contact requests newest first, filtered by status and paginated.
// Status "" or "all" returns every request. A zero limit means no limit.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactRequest, error) {
	var conditions []string
	var args []any

	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" {
		args = append(args, status)
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT ` + contactSelectCols + ` FROM contact_requests ` + where + ` ORDER BY created_at DESC`
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*model.ContactRequest
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, err
		}
		requests = append(requests, c)
	}
	return requests, rows.Err()
}

// UpdateStatus sets the status of a contact request.
func (r *PgContactRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_requests SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a contact request permanently.
func (r *PgContactRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
