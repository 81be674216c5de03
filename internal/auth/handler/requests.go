package handler

import (
	"strings"

	"github.com/asaskevich/govalidator"

	dErrors "solestore/pkg/domain-errors"
)

// RegisterRequest is the POST /api/auth/register body.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// Validate collects every violation so the client can fix them in one pass.
func (r *RegisterRequest) Validate() error {
	var details []string

	if strings.TrimSpace(r.FirstName) == "" {
		details = append(details, "First name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		details = append(details, "Last name is required")
	}
	if !govalidator.IsEmail(r.Email) || !govalidator.StringLength(r.Email, "3", "255") {
		details = append(details, "Invalid email format")
	}
	details = append(details, passwordViolations(r.Password)...)

	if len(details) > 0 {
		return dErrors.New(dErrors.CodeValidation, "Validation failed").WithDetails(details...)
	}
	return nil
}

// passwordViolations enforces the password policy: at least 8 characters
// with upper, lower, digit and one of !@#$%^&*.
func passwordViolations(password string) []string {
	var details []string
	if len(password) < 8 {
		details = append(details, "Password must be at least 8 characters long")
	}
	if !strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		details = append(details, "Password must contain at least one uppercase letter")
	}
	if !strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") {
		details = append(details, "Password must contain at least one lowercase letter")
	}
	if !strings.ContainsAny(password, "0123456789") {
		details = append(details, "Password must contain at least one number")
	}
	if !strings.ContainsAny(password, "!@#$%^&*") {
		details = append(details, "Password must contain at least one special character (!@#$%^&*)")
	}
	return details
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "Validation failed").
			WithDetails("Email and password are required")
	}
	if !govalidator.IsEmail(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "Validation failed").
			WithDetails("Invalid email format")
	}
	return nil
}
