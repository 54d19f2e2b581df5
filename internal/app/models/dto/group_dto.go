package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/campusconnect/backend/internal/app/models"
	rules "github.com/campusconnect/backend/internal/pkg/validation"
)

var (
	visibilityRule  = rules.OneOf(models.VisibilityPublic, models.VisibilityPrivate)
	meetingTypeRule = rules.OneOf(models.MeetingVirtual, models.MeetingInPerson)
)

// CreateGroupRequest creates a study group
type CreateGroupRequest struct {
	Name         string   `json:"name" binding:"required" example:"Algorithms Night"`
	Subject      string   `json:"subject" binding:"required" example:"CS301"`
	Description  string   `json:"description,omitempty"`
	Semester     string   `json:"semester,omitempty" example:"Fall 2026"`
	Tags         []string `json:"tags,omitempty" example:"graphs,dp"`
	Visibility   string   `json:"visibility,omitempty" example:"public"`
	MaxMembers   *int     `json:"maxMembers,omitempty" binding:"omitempty,min=1" example:"30"`
	MeetingType  string   `json:"meetingType,omitempty" example:"virtual"`
	Location     string   `json:"location,omitempty"`
	ScheduleDays []string `json:"scheduleDays,omitempty" example:"Mon,Wed"`
	StartTime    string   `json:"startTime,omitempty" example:"18:00"`
	Duration     string   `json:"duration,omitempty" example:"2h"`
}

// Validate applies the domain rules
func (r *CreateGroupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, rules.NotBlank, validation.Length(1, 100)),
		validation.Field(&r.Subject, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.Visibility, visibilityRule),
		validation.Field(&r.MaxMembers, validation.Min(1), validation.Max(1000)),
		validation.Field(&r.MeetingType, meetingTypeRule),
		validation.Field(&r.StartTime, rules.TimeOfDay),
	)
}

// ToModel converts the request into a new group owned by creatorID
func (r *CreateGroupRequest) ToModel(creatorID int64) *models.StudyGroup {
	g := &models.StudyGroup{
		Name:         r.Name,
		Subject:      r.Subject,
		Description:  r.Description,
		Semester:     r.Semester,
		Tags:         models.NormalizeTags(r.Tags),
		Visibility:   models.Visibility(r.Visibility),
		CreatedBy:    creatorID,
		MaxMembers:   models.DefaultGroupMaxMembers,
		MeetingType:  models.MeetingType(r.MeetingType),
		Location:     r.Location,
		ScheduleDays: r.ScheduleDays,
		StartTime:    r.StartTime,
		Duration:     r.Duration,
	}
	if g.Visibility == "" {
		g.Visibility = models.VisibilityPublic
	}
	if g.MeetingType == "" {
		g.MeetingType = models.MeetingVirtual
	}
	if r.MaxMembers != nil {
		g.MaxMembers = *r.MaxMembers
	}
	if g.ScheduleDays == nil {
		g.ScheduleDays = []string{}
	}
	return g
}

// UpdateGroupRequest is a partial group update
type UpdateGroupRequest struct {
	Name         *string   `json:"name,omitempty"`
	Subject      *string   `json:"subject,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Semester     *string   `json:"semester,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	Visibility   *string   `json:"visibility,omitempty"`
	MaxMembers   *int      `json:"maxMembers,omitempty" binding:"omitempty,min=1"`
	MeetingType  *string   `json:"meetingType,omitempty"`
	Location     *string   `json:"location,omitempty"`
	ScheduleDays *[]string `json:"scheduleDays,omitempty"`
	StartTime    *string   `json:"startTime,omitempty"`
	Duration     *string   `json:"duration,omitempty"`
}

// Validate applies the domain rules
func (r *UpdateGroupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, rules.NotBlank, validation.Length(1, 100)),
		validation.Field(&r.Subject, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.Visibility, visibilityRule),
		validation.Field(&r.MaxMembers, validation.Min(1), validation.Max(1000)),
		validation.Field(&r.MeetingType, meetingTypeRule),
		validation.Field(&r.StartTime, rules.TimeOfDay),
	)
}

// Patch converts the request into a model patch
func (r *UpdateGroupRequest) Patch() models.StudyGroupPatch {
	p := models.StudyGroupPatch{
		Name:         r.Name,
		Subject:      r.Subject,
		Description:  r.Description,
		Semester:     r.Semester,
		Tags:         r.Tags,
		MaxMembers:   r.MaxMembers,
		Location:     r.Location,
		ScheduleDays: r.ScheduleDays,
		StartTime:    r.StartTime,
		Duration:     r.Duration,
	}
	if r.Visibility != nil {
		v := models.Visibility(*r.Visibility)
		p.Visibility = &v
	}
	if r.MeetingType != nil {
		m := models.MeetingType(*r.MeetingType)
		p.MeetingType = &m
	}
	return p
}

// GroupDetailResponse is a group with its member list
type GroupDetailResponse struct {
	*models.StudyGroup
	Members []models.UserSummary `json:"members"`
}
