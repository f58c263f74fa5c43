package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/royaldevs/backend/internal/model"
)

// PgShowcaseRepository is the PostgreSQL implementation of ShowcaseRepository.
type PgShowcaseRepository struct {
	pool *pgxpool.Pool
}

// NewPgShowcaseRepository creates a PgShowcaseRepository.
func NewPgShowcaseRepository(pool *pgxpool.Pool) *PgShowcaseRepository {
	return &PgShowcaseRepository{pool: pool}
}

var _ ShowcaseRepository = (*PgShowcaseRepository)(nil)

// ListProjects returns portfolio projects ordered by display_order.
func (r *PgShowcaseRepository) ListProjects(ctx context.Context, featuredOnly bool) ([]*model.Project, error) {
	query := `SELECT id, title, client, category, description, COALESCE(image_url, ''), technologies,
	                 COALESCE(icon, ''), COALESCE(results, ''), is_featured, display_order, created_at
	          FROM projects`
	if featuredOnly {
		query += ` WHERE is_featured = true`
	}
	query += ` ORDER BY display_order ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Client, &p.Category, &p.Description, &p.ImageURL, &p.Technologies,
			&p.Icon, &p.Results, &p.IsFeatured, &p.DisplayOrder, &p.CreatedAt); err != nil {
			return nil, err
		}
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// ListTeamMembers returns active team members ordered by display_order.
func (r *PgShowcaseRepository) ListTeamMembers(ctx context.Context) ([]*model.TeamMember, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, role, bio, avatar_url, email, whatsapp, linkedin_url, github_url, display_order, is_active
		 FROM team_members WHERE is_active = true ORDER BY display_order ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*model.TeamMember
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Bio, &m.AvatarURL, &m.Email, &m.WhatsApp,
			&m.LinkedInURL, &m.GitHubURL, &m.DisplayOrder, &m.IsActive); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}
