package model

import "time"

// Contact request statuses. Any status may move to any other.
const (
	ContactStatusPending    = "pending"
	ContactStatusInProgress = "in_progress"
	ContactStatusCompleted  = "completed"
	ContactStatusRejected   = "rejected"
)

// ProjectTypes is the closed set of project types a prospect can pick.
var ProjectTypes = []string{"website", "webapp", "ecommerce", "redesign", "other"}

// BudgetRanges is the closed set of budget ranges offered on the contact form.
var BudgetRanges = []string{"<500", "500-1k", "1k-2k", "2k+"}

// ContactRequest represents one prospective-client inquiry submitted via the contact form.
type ContactRequest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     *string   `json:"company"` // nil when not provided
	ProjectType string    `json:"project_type"`
	Budget      *string   `json:"budget"` // nil means "not specified"
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContactListOptions carries filter and pagination parameters for listing contact requests.
type ContactListOptions struct {
	// Status filters by request status. Empty string and "all" return every request.
	Status string
	Limit  int
	Offset int
}

// IsValidContactStatus reports whether s is one of the four contact request statuses.
func IsValidContactStatus(s string) bool {
	switch s {
	case ContactStatusPending, ContactStatusInProgress, ContactStatusCompleted, ContactStatusRejected:
		return true
	}
	return false
}
