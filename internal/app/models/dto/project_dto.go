package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/campusconnect/backend/internal/app/models"
	rules "github.com/campusconnect/backend/internal/pkg/validation"
)

// CreateProjectRequest creates a project looking for teammates
type CreateProjectRequest struct {
	Title       string   `json:"title" binding:"required" example:"Campus Navigator"`
	Description string   `json:"description" binding:"required"`
	TechStack   []string `json:"techStack" example:"Go,React"`
	MaxMembers  int      `json:"maxMembers" binding:"required,min=1" example:"4"`
	Deadline    *string  `json:"deadline,omitempty" example:"2027-01-15"`
	Status      string   `json:"status,omitempty" example:"open"`
}

// Validate applies the domain rules
func (r *CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 2000)),
		validation.Field(&r.MaxMembers, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&r.Deadline, validation.By(validDate)),
		validation.Field(&r.Status, rules.OneOf(models.ProjectStatuses...)),
	)
}

// ToModel converts the request into a project owned by creatorID
func (r *CreateProjectRequest) ToModel(creatorID int64) (*models.Project, error) {
	deadline, err := optionalDate(r.Deadline)
	if err != nil {
		return nil, err
	}
	p := &models.Project{
		Title:       r.Title,
		Description: r.Description,
		TechStack:   models.NormalizeTechStack(r.TechStack),
		MaxMembers:  r.MaxMembers,
		Deadline:    deadline,
		Status:      models.ProjectStatus(r.Status),
		CreatedBy:   creatorID,
	}
	if p.Status == "" {
		p.Status = models.ProjectOpen
	}
	return p, nil
}

// UpdateProjectRequest is a partial project update
type UpdateProjectRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	TechStack   *[]string `json:"techStack,omitempty"`
	MaxMembers  *int      `json:"maxMembers,omitempty" binding:"omitempty,min=1"`
	Deadline    *string   `json:"deadline,omitempty"`
	Status      *string   `json:"status,omitempty"`
}

// Validate applies the domain rules
func (r *UpdateProjectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.Length(1, 2000)),
		validation.Field(&r.MaxMembers, validation.Min(1), validation.Max(100)),
		validation.Field(&r.Deadline, validation.By(validDate)),
		validation.Field(&r.Status, rules.OneOf(models.ProjectStatuses...)),
	)
}

// Patch converts the request into a model patch
func (r *UpdateProjectRequest) Patch() (models.ProjectPatch, error) {
	deadline, err := optionalDate(r.Deadline)
	if err != nil {
		return models.ProjectPatch{}, err
	}
	p := models.ProjectPatch{
		Title:       r.Title,
		Description: r.Description,
		TechStack:   r.TechStack,
		MaxMembers:  r.MaxMembers,
		Deadline:    deadline,
	}
	if r.Status != nil {
		s := models.ProjectStatus(*r.Status)
		p.Status = &s
	}
	return p, nil
}

// ProjectDetailResponse is a project with its member list
type ProjectDetailResponse struct {
	*models.Project
	Members []models.UserSummary `json:"members"`
}

// AdminStatsResponse is the admin dashboard payload
type AdminStatsResponse = models.AdminStats
