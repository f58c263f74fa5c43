package validation

import (
	"strings"
)

// ContactForm is the public contact form as submitted by a prospect.
type ContactForm struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Company     string `json:"company" validate:"max=100"`
	ProjectType string `json:"projectType" validate:"required,projecttype"`
	Budget      string `json:"budget" validate:"omitempty,budgetrange"`
	Message     string `json:"message" validate:"required,min=10,max=2000"`
}

var contactMessages = messages{
	"name": {
		"required": "Name is required",
		"max":      "Name is too long",
	},
	"email": {
		"max": "Email is too long",
		"*":   "Invalid email address",
	},
	"company": {
		"*": "Company name is too long",
	},
	"projectType": {
		"*": "Please select a project type",
	},
	"budget": {
		"*": "Please select a valid budget range",
	},
	"message": {
		"max": "Message is too long",
		"*":   "Message must be at least 10 characters",
	},
}

// Normalize returns a copy of the form with surrounding whitespace removed.
func (f ContactForm) Normalize() ContactForm {
	return ContactForm{
		Name:        strings.TrimSpace(f.Name),
		Email:       strings.TrimSpace(f.Email),
		Company:     strings.TrimSpace(f.Company),
		ProjectType: strings.TrimSpace(f.ProjectType),
		Budget:      strings.TrimSpace(f.Budget),
		Message:     strings.TrimSpace(f.Message),
	}
}

// ValidateContact trims the form and checks every field. It never performs
// I/O. On success the trimmed form is returned with nil Errors.
func ValidateContact(f ContactForm) (ContactForm, Errors) {
	f = f.Normalize()
	if errs := check(f, contactMessages); errs != nil {
		return f, errs
	}
	return f, nil
}
