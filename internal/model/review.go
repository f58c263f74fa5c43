package model

import "time"

// Review is a client testimonial. Reviews are only shown publicly once approved.
type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	Name       string    `json:"name"`
	Company    *string   `json:"company"`
	Location   *string   `json:"location"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}
