package validation

import "strings"

// ReviewForm is a testimonial submitted by a signed-in user.
type ReviewForm struct {
	Name     string `json:"name" validate:"min=2,max=100"`
	Company  string `json:"company" validate:"max=100"`
	Location string `json:"location" validate:"max=100"`
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Text     string `json:"text" validate:"min=20,max=500"`
}

var reviewMessages = messages{
	"name": {
		"min": "Name must be at least 2 characters",
		"max": "Name is too long",
	},
	"company":  {"*": "Company name is too long"},
	"location": {"*": "Location is too long"},
	"rating": {
		"min": "Please select a rating",
		"max": "Rating must be between 1 and 5",
	},
	"text": {
		"min": "Review must be at least 20 characters",
		"max": "Review is too long",
	},
}

func (f ReviewForm) Normalize() ReviewForm {
	return ReviewForm{
		Name:     strings.TrimSpace(f.Name),
		Company:  strings.TrimSpace(f.Company),
		Location: strings.TrimSpace(f.Location),
		Rating:   f.Rating,
		Text:     strings.TrimSpace(f.Text),
	}
}

// ValidateReview trims and checks a review form.
func ValidateReview(f ReviewForm) (ReviewForm, Errors) {
	f = f.Normalize()
	if errs := check(f, reviewMessages); errs != nil {
		return f, errs
	}
	return f, nil
}
