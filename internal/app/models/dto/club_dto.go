package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/campusconnect/backend/internal/app/models"
	rules "github.com/campusconnect/backend/internal/pkg/validation"
)

var postTypeRule = rules.OneOf(models.PostAnnouncement, models.PostEvent, models.PostUpdate)

// CreateClubRequest creates a club awaiting approval
type CreateClubRequest struct {
	Name         string `json:"name" binding:"required" example:"Robotics Club"`
	Description  string `json:"description" binding:"required"`
	TeamSize     int    `json:"teamSize" binding:"required,min=1" example:"25"`
	Category     string `json:"category" binding:"required" example:"Technical"`
	ContactEmail string `json:"contactEmail,omitempty" example:"robotics@campus.edu"`
	FoundedYear  *int   `json:"foundedYear,omitempty" example:"2021"`
}

// Validate applies the domain rules
func (r *CreateClubRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, rules.NotBlank, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 1000)),
		validation.Field(&r.TeamSize, validation.Required, validation.Min(1)),
		validation.Field(&r.Category, validation.Required, rules.OneOf(models.ClubCategories...)),
		validation.Field(&r.ContactEmail, is.Email),
		validation.Field(&r.FoundedYear, validation.Min(1800), validation.Max(2100)),
	)
}

// ToModel converts the request into a pending club owned by creatorID
func (r *CreateClubRequest) ToModel(creatorID int64) *models.Club {
	return &models.Club{
		Name:         strings.TrimSpace(r.Name),
		Description:  r.Description,
		TeamSize:     r.TeamSize,
		Category:     models.ClubCategory(r.Category),
		ContactEmail: models.NormalizeEmail(r.ContactEmail),
		FoundedYear:  r.FoundedYear,
		CreatedBy:    creatorID,
		Status:       models.StatusPending,
	}
}

// UpdateClubRequest is a partial club update
type UpdateClubRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	TeamSize     *int    `json:"teamSize,omitempty" binding:"omitempty,min=1"`
	Category     *string `json:"category,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	FoundedYear  *int    `json:"foundedYear,omitempty"`
}

// Validate applies the domain rules
func (r *UpdateClubRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.Length(1, 1000)),
		validation.Field(&r.TeamSize, validation.Min(1)),
		validation.Field(&r.Category, rules.OneOf(models.ClubCategories...)),
		validation.Field(&r.ContactEmail, is.Email),
		validation.Field(&r.FoundedYear, validation.Min(1800), validation.Max(2100)),
	)
}

// Patch converts the request into a model patch
func (r *UpdateClubRequest) Patch() models.ClubPatch {
	p := models.ClubPatch{
		Name:         r.Name,
		Description:  r.Description,
		TeamSize:     r.TeamSize,
		ContactEmail: r.ContactEmail,
		FoundedYear:  r.FoundedYear,
	}
	if r.Category != nil {
		c := models.ClubCategory(*r.Category)
		p.Category = &c
	}
	return p
}

// ClubDetailResponse is a club with its member list
type ClubDetailResponse struct {
	*models.Club
	Members []models.UserSummary `json:"members"`
}

// CreatePostRequest creates a club post
type CreatePostRequest struct {
	Type          string  `json:"type" binding:"required" example:"announcement"`
	Title         string  `json:"title" binding:"required" example:"Kick-off meeting"`
	Content       string  `json:"content" binding:"required"`
	EventDate     *string `json:"eventDate,omitempty" example:"2026-11-05"`
	EventTime     string  `json:"eventTime,omitempty" example:"17:00"`
	EventLocation string  `json:"eventLocation,omitempty" example:"Room 204"`
}

// Validate applies the domain rules. Event posts need an event date.
func (r *CreatePostRequest) Validate() error {
	dateRules := []validation.Rule{validation.By(validDate)}
	if r.Type == string(models.PostEvent) {
		dateRules = append(dateRules, validation.Required.Error("is required for event posts"))
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Type, validation.Required, postTypeRule),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Required, validation.Length(1, 2000)),
		validation.Field(&r.EventDate, dateRules...),
		validation.Field(&r.EventTime, rules.TimeOfDay),
	)
}

// ToModel converts the request into a post on clubID authored by authorID
func (r *CreatePostRequest) ToModel(clubID, authorID int64) (*models.ClubPost, error) {
	date, err := optionalDate(r.EventDate)
	if err != nil {
		return nil, err
	}
	return &models.ClubPost{
		ClubID:        clubID,
		CreatedBy:     authorID,
		Type:          models.PostType(r.Type),
		Title:         r.Title,
		Content:       r.Content,
		EventDate:     date,
		EventTime:     r.EventTime,
		EventLocation: r.EventLocation,
	}, nil
}
