package model

import "time"

// PageView records a single page visit for the site analytics.
type PageView struct {
	ID        string    `json:"id"`
	PagePath  string    `json:"page_path"`
	VisitorID string    `json:"visitor_id"`
	UserAgent string    `json:"user_agent"`
	Referrer  *string   `json:"referrer"`
	CreatedAt time.Time `json:"created_at"`
}
