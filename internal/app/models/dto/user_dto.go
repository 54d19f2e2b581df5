package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/campusconnect/backend/internal/app/models"
	rules "github.com/campusconnect/backend/internal/pkg/validation"
)

// UserResponse is the account view. Student or alumni fields are present depending
// on the role.
type UserResponse struct {
	ID       int64           `json:"id" example:"1"`
	Name     string          `json:"name" example:"Jane Doe"`
	Email    string          `json:"email" example:"jane@campus.edu"`
	Role     models.RoleType `json:"role" example:"user"`
	IsBanned bool            `json:"isBanned"`

	Course *string `json:"course,omitempty" example:"Computer Science"`
	Year   *int    `json:"year,omitempty" example:"2"`

	PassingYear    *int    `json:"passingYear,omitempty" example:"2018"`
	CurrentStatus  *string `json:"currentStatus,omitempty" example:"employed"`
	CurrentCompany string  `json:"currentCompany,omitempty"`
	JobTitle       string  `json:"jobTitle,omitempty"`
	Location       string  `json:"location,omitempty"`
	LinkedIn       string  `json:"linkedIn,omitempty"`
	Bio            string  `json:"bio,omitempty"`

	GroupsJoined []GroupSummary `json:"groupsJoined,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// GroupSummary is the reduced group view attached to a user
type GroupSummary struct {
	ID      int64  `json:"id" example:"1"`
	Name    string `json:"name" example:"Algorithms Night"`
	Subject string `json:"subject" example:"CS301"`
}

// NewUserResponse maps a user onto its response view
func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsBanned:  u.IsBanned,
		CreatedAt: u.CreatedAt,
	}
	if s := u.Student; s != nil {
		course, year := s.Course, s.Year
		resp.Course = &course
		resp.Year = &year
	}
	if a := u.Alumni; a != nil {
		year, status := a.PassingYear, string(a.CurrentStatus)
		resp.PassingYear = &year
		resp.CurrentStatus = &status
		resp.CurrentCompany = a.CurrentCompany
		resp.JobTitle = a.JobTitle
		resp.Location = a.Location
		resp.LinkedIn = a.LinkedIn
		resp.Bio = a.Bio
	}
	return resp
}

// NewGroupSummaries maps groups onto summaries
func NewGroupSummaries(groups []*models.StudyGroup) []GroupSummary {
	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupSummary{ID: g.ID, Name: g.Name, Subject: g.Subject})
	}
	return out
}

// UpdateMeRequest is a partial update of the caller's account
type UpdateMeRequest struct {
	Name   *string `json:"name,omitempty" example:"Jane D."`
	Course *string `json:"course,omitempty" example:"Mathematics"`
	Year   *int    `json:"year,omitempty" binding:"omitempty,min=0,max=6" example:"3"`
}

// Validate applies the domain rules
func (r *UpdateMeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Course, validation.NilOrNotEmpty),
		validation.Field(&r.Year, validation.Min(0), validation.Max(6)),
	)
}

// Patch converts the request into a model patch
func (r *UpdateMeRequest) Patch() models.UserPatch {
	return models.UserPatch{Name: r.Name, Course: r.Course, Year: r.Year}
}

// UpdateAlumniProfileRequest is a partial update of an alumni profile
type UpdateAlumniProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	PassingYear    *int    `json:"passingYear,omitempty" example:"2018"`
	CurrentStatus  *string `json:"currentStatus,omitempty" example:"masters"`
	CurrentCompany *string `json:"currentCompany,omitempty"`
	JobTitle       *string `json:"jobTitle,omitempty"`
	Location       *string `json:"location,omitempty"`
	LinkedIn       *string `json:"linkedIn,omitempty"`
	Bio            *string `json:"bio,omitempty"`
}

// Validate applies the domain rules
func (r *UpdateAlumniProfileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.PassingYear, validation.Min(1950), validation.Max(2100)),
		validation.Field(&r.CurrentStatus, rules.OneOf(models.AlumniStatuses...)),
		validation.Field(&r.LinkedIn, is.URL),
		validation.Field(&r.Bio, validation.Length(0, 500)),
	)
}

// Patch converts the request into a model patch
func (r *UpdateAlumniProfileRequest) Patch() models.AlumniPatch {
	p := models.AlumniPatch{
		Name:           r.Name,
		PassingYear:    r.PassingYear,
		CurrentCompany: r.CurrentCompany,
		JobTitle:       r.JobTitle,
		Location:       r.Location,
		LinkedIn:       r.LinkedIn,
		Bio:            r.Bio,
	}
	if r.CurrentStatus != nil {
		s := models.AlumniStatus(*r.CurrentStatus)
		p.CurrentStatus = &s
	}
	return p
}

// AdminUserResponse is a user row on the admin dashboard
type AdminUserResponse struct {
	UserResponse
	GroupsJoinedCount int `json:"groupsJoinedCount" example:"3"`
}

// NewAdminUserResponses maps admin user views
func NewAdminUserResponses(users []*models.AdminUserView) []AdminUserResponse {
	out := make([]AdminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, AdminUserResponse{
			UserResponse:      NewUserResponse(&u.User),
			GroupsJoinedCount: u.GroupsJoinedCount,
		})
	}
	return out
}

// AddMemberRequest adds a member to a club by email
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email" example:"member@campus.edu"`
}
