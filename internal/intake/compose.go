// Package intake runs the contact-form pipeline: validate, persist, then
// notify on a best-effort side channel.
package intake

import (
	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/validation"
	"github.com/royaldevs/backend/pkg/relay"
)

// ComposeRecord builds the row to insert from a validated form. Empty
// optional fields become nil so they are stored as NULL, never "".
func ComposeRecord(f validation.ContactForm) *model.ContactRequest {
	return &model.ContactRequest{
		Name:        f.Name,
		Email:       f.Email,
		Company:     optional(f.Company),
		ProjectType: f.ProjectType,
		Budget:      optional(f.Budget),
		Message:     f.Message,
		Status:      model.ContactStatusPending,
	}
}

// ComposeNotification builds the relay payload for a persisted request.
// Only the id travels; the relay reads the record back from the store.
func ComposeNotification(req *model.ContactRequest) relay.Notification {
	return relay.Notification{RequestID: req.ID}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
