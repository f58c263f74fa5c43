package service

import (
	"context"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/repository"
)

// ShowcaseService serves the portfolio and team sections.
type ShowcaseService interface {
	ListProjects(ctx context.Context, featuredOnly bool) ([]*model.Project, error)
	ListTeam(ctx context.Context) ([]*model.TeamMember, error)
}

type showcaseServiceImpl struct {
	repo repository.ShowcaseRepository
}

// NewShowcaseService creates a ShowcaseService.
func NewShowcaseService(repo repository.ShowcaseRepository) ShowcaseService {
	return &showcaseServiceImpl{repo: repo}
}

func (s *showcaseServiceImpl) ListProjects(ctx context.Context, featuredOnly bool) ([]*model.Project, error) {
	projects, err := s.repo.ListProjects(ctx, featuredOnly)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	return projects, nil
}

func (s *showcaseServiceImpl) ListTeam(ctx context.Context) ([]*model.TeamMember, error) {
	members, err := s.repo.ListTeamMembers(ctx)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []*model.TeamMember{}
	}
	return members, nil
}
