package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/royaldevs/backend/internal/intake"
	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/repository"
	"github.com/royaldevs/backend/internal/validation"
	"github.com/royaldevs/backend/pkg/relay"
)

// ErrInvalidStatus is returned when a status outside the four contact
// request statuses is requested.
var ErrInvalidStatus = errors.New("invalid status")

// ContactService handles contact form submissions and their admin triage.
type ContactService interface {
	// Submit runs the form through the intake pipeline. It returns
	// validation.Errors for invalid input and an error wrapping
	// intake.ErrSubmitFailed when the request could not be stored.
	Submit(ctx context.Context, form validation.ContactForm) (*model.ContactRequest, error)
	Get(ctx context.Context, id string) (*model.ContactRequest, error)
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type contactServiceImpl struct {
	repo     repository.ContactRepository
	notifier relay.Notifier
	logger   *slog.Logger
}

// NewContactService creates a ContactService. notifier may be nil, in which
// case submissions are stored without notifying anyone.
func NewContactService(repo repository.ContactRepository, notifier relay.Notifier, logger *slog.Logger) ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contactServiceImpl{repo: repo, notifier: notifier, logger: logger}
}

// Submit drives a fresh orchestrator, one per submission.
func (s *contactServiceImpl) Submit(ctx context.Context, form validation.ContactForm) (*model.ContactRequest, error) {
	o := intake.NewOrchestrator(s.repo, s.notifier, s.logger)
	if err := o.SetForm(form); err != nil {
		return nil, err
	}
	return o.Submit(ctx)
}

func (s *contactServiceImpl) Get(ctx context.Context, id string) (*model.ContactRequest, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns contact requests newest first, optionally filtered by status.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactRequest, error) {
	if opts.Status != "" && opts.Status != "all" && !model.IsValidContactStatus(opts.Status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, opts)
}

// UpdateStatus moves a request to any of the four statuses.
func (s *contactServiceImpl) UpdateStatus(ctx context.Context, id, status string) error {
	if !model.IsValidContactStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
