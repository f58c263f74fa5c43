package repository

import (
	"context"

	"github.com/royaldevs/backend/internal/model"
)

// ShowcaseRepository reads the portfolio and team content. Both relations are
// read-only from the application's point of view.
type ShowcaseRepository interface {
	// ListProjects returns portfolio projects by display_order. featuredOnly
	// restricts the result to is_featured rows.
	ListProjects(ctx context.Context, featuredOnly bool) ([]*model.Project, error)
	// ListTeamMembers returns active team members by display_order.
	ListTeamMembers(ctx context.Context) ([]*model.TeamMember, error)
}
