package intake

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/validation"
	"github.com/royaldevs/backend/pkg/relay"
)

// State is the submission state of one contact form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

var (
	// ErrInFlight is returned when Submit is called while a submission is running.
	ErrInFlight = errors.New("intake: submission already in flight")
	// ErrNeedsReset is returned when Submit is called in Success before Reset.
	ErrNeedsReset = errors.New("intake: submission complete, reset before sending another")
	// ErrSubmitFailed is the generic, retryable persistence failure.
	ErrSubmitFailed = errors.New("intake: failed to submit request")
)

// Store persists a contact request and fills in its id.
type Store interface {
	Create(ctx context.Context, req *model.ContactRequest) error
}

// Orchestrator owns one contact form and drives it through
// Idle -> Submitting -> Success | Failed.
type Orchestrator struct {
	store    Store
	notifier relay.Notifier
	logger   *slog.Logger

	mu    sync.Mutex
	state State
	form  validation.ContactForm
}

// NewOrchestrator creates an Orchestrator in the Idle state.
// A nil notifier disables notification. A nil logger uses slog.Default().
func NewOrchestrator(store Store, notifier relay.Notifier, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{store: store, notifier: notifier, logger: logger}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Form returns the current form contents.
func (o *Orchestrator) Form() validation.ContactForm {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.form
}

// SetForm replaces the form contents. It fails with ErrInFlight while submitting.
func (o *Orchestrator) SetForm(f validation.ContactForm) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateSubmitting {
		return ErrInFlight
	}
	o.form = f
	return nil
}

// Reset moves Success back to Idle ("send another message").
// It is a no-op in any other state.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateSuccess {
		o.state = StateIdle
	}
}

// Submit validates the current form, persists it and then notifies.
//
// Invalid input returns validation.Errors without touching the store or the
// state. A persistence failure moves to Failed, keeps the form and returns an
// error wrapping ErrSubmitFailed. On success the form is cleared and the
// stored record is returned. A notification failure never changes the outcome.
// From Success, Submit fails with ErrNeedsReset until Reset is called.
func (o *Orchestrator) Submit(ctx context.Context) (*model.ContactRequest, error) {
	o.mu.Lock()
	switch o.state {
	case StateSubmitting:
		o.mu.Unlock()
		return nil, ErrInFlight
	case StateSuccess:
		o.mu.Unlock()
		return nil, ErrNeedsReset
	}
	form, errs := validation.ValidateContact(o.form)
	if errs != nil {
		o.mu.Unlock()
		return nil, errs
	}
	o.state = StateSubmitting
	o.mu.Unlock()

	rec := ComposeRecord(form)
	if err := o.store.Create(ctx, rec); err != nil {
		o.logger.Error("contact request persist failed", "error", err)
		o.finish(StateFailed, false)
		return nil, errors.Join(ErrSubmitFailed, err)
	}

	o.notify(ctx, rec)
	o.finish(StateSuccess, true)
	return rec, nil
}

// notify is the best-effort side channel: the call is awaited so its failure
// can be logged, and the error is dropped here.
func (o *Orchestrator) notify(ctx context.Context, rec *model.ContactRequest) {
	if o.notifier == nil {
		return
	}
	if err := o.notifier.Notify(ctx, ComposeNotification(rec)); err != nil {
		o.logger.Warn("contact notification failed", "request_id", rec.ID, "error", err)
	}
}

func (o *Orchestrator) finish(state State, clear bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = state
	if clear {
		o.form = validation.ContactForm{}
	}
}
