package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/campusconnect/backend/internal/app/models"
	rules "github.com/campusconnect/backend/internal/pkg/validation"
)

// PasswordMinLength is the shortest accepted password
const PasswordMinLength = 6

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@campus.edu"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// SignupRequest registers a student account
type SignupRequest struct {
	Name     string `json:"name" binding:"required" example:"Jane Doe"`
	Email    string `json:"email" binding:"required,email" example:"jane@campus.edu"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Course   string `json:"course" binding:"required" example:"Computer Science"`
	Year     *int   `json:"year" binding:"required,min=0,max=6" example:"2"`
}

// Validate applies the domain rules on top of the binding tags
func (r *SignupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(PasswordMinLength, 72)),
		validation.Field(&r.Course, validation.Required),
		validation.Field(&r.Year, validation.NotNil, validation.Min(0), validation.Max(6)),
	)
}

// AlumniSignupRequest registers an alumni account
type AlumniSignupRequest struct {
	Name           string `json:"name" binding:"required" example:"Sam Lee"`
	Email          string `json:"email" binding:"required,email" example:"sam@alumni.edu"`
	Password       string `json:"password" binding:"required,min=6"`
	PassingYear    int    `json:"passingYear" binding:"required" example:"2018"`
	CurrentStatus  string `json:"currentStatus" binding:"required" example:"employed"`
	CurrentCompany string `json:"currentCompany,omitempty" example:"Acme"`
	JobTitle       string `json:"jobTitle,omitempty" example:"Engineer"`
	Location       string `json:"location,omitempty" example:"Berlin"`
	LinkedIn       string `json:"linkedIn,omitempty" example:"https://linkedin.com/in/samlee"`
	Bio            string `json:"bio,omitempty"`
}

// Validate applies the domain rules on top of the binding tags
func (r *AlumniSignupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(PasswordMinLength, 72)),
		validation.Field(&r.PassingYear, validation.Required, validation.Min(1950), validation.Max(2100)),
		validation.Field(&r.CurrentStatus, validation.Required, rules.OneOf(models.AlumniStatuses...)),
		validation.Field(&r.LinkedIn, is.URL),
		validation.Field(&r.Bio, validation.Length(0, 500)),
	)
}

// Profile converts the request into an alumni profile
func (r *AlumniSignupRequest) Profile() *models.AlumniProfile {
	return &models.AlumniProfile{
		PassingYear:    r.PassingYear,
		CurrentStatus:  models.AlumniStatus(r.CurrentStatus),
		CurrentCompany: r.CurrentCompany,
		JobTitle:       r.JobTitle,
		Location:       r.Location,
		LinkedIn:       r.LinkedIn,
		Bio:            r.Bio,
	}
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType" example:"Bearer"`
	ExpiresIn int          `json:"expiresIn" example:"604800"`
	User      UserResponse `json:"user"`
}

