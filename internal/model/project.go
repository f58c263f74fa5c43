package model

import "time"

// Project is a portfolio entry shown on the marketing site.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Client       string    `json:"client"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	Technologies []string  `json:"technologies"`
	Icon         string    `json:"icon"`
	Results      string    `json:"results"`
	IsFeatured   bool      `json:"is_featured"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeamMember is a member of the agency shown in the about section.
type TeamMember struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Bio          *string `json:"bio"`
	AvatarURL    *string `json:"avatar_url"`
	Email        *string `json:"email"`
	WhatsApp     *string `json:"whatsapp"`
	LinkedInURL  *string `json:"linkedin_url"`
	GitHubURL    *string `json:"github_url"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
}
