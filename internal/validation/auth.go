package validation

import "strings"

// SignInForm is the email/password sign-in form.
type SignInForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

// SignUpForm is the email/password registration form.
type SignUpForm struct {
	FullName        string `json:"fullName" validate:"min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

var signInMessages = messages{
	"email":    {"*": "Invalid email address"},
	"password": {"*": "Password must be at least 6 characters"},
}

var signUpMessages = messages{
	"fullName": {
		"min": "Name must be at least 2 characters",
		"max": "Name is too long",
	},
	"email":           {"*": "Invalid email address"},
	"password":        {"*": "Password must be at least 6 characters"},
	"confirmPassword": {"*": "Passwords don't match"},
}

// ValidateSignIn trims the email (passwords are taken verbatim) and checks the form.
func ValidateSignIn(f SignInForm) (SignInForm, Errors) {
	f.Email = strings.TrimSpace(f.Email)
	if errs := check(f, signInMessages); errs != nil {
		return f, errs
	}
	return f, nil
}

// ValidateSignUp trims name and email and checks the form.
func ValidateSignUp(f SignUpForm) (SignUpForm, Errors) {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	if errs := check(f, signUpMessages); errs != nil {
		return f, errs
	}
	return f, nil
}
