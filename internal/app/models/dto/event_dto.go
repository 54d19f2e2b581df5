package dto

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/campusconnect/backend/internal/app/models"
	rules "github.com/campusconnect/backend/internal/pkg/validation"
)

// CreateEventRequest creates an event awaiting approval
type CreateEventRequest struct {
	Title          string `json:"title" binding:"required" example:"Career Fair"`
	Description    string `json:"description" binding:"required"`
	Category       string `json:"category" binding:"required" example:"Academic"`
	Date           string `json:"date" binding:"required" example:"2026-12-01"`
	Time           string `json:"time" binding:"required" example:"14:00"`
	LocationType   string `json:"locationType" binding:"required" example:"in-person"`
	LocationDetail string `json:"locationDetail,omitempty" example:"Main Hall"`
	Agenda         string `json:"agenda,omitempty"`
	MaxAttendees   *int   `json:"maxAttendees,omitempty" binding:"omitempty,min=1" example:"100"`
	ContactInfo    string `json:"contactInfo,omitempty"`
}

// ValidateAt applies the domain rules relative to now. The date must fall on a
// future day and in-person events need a location.
func (r *CreateEventRequest) ValidateAt(now time.Time) error {
	locationRules := []validation.Rule{}
	if r.LocationType == string(models.MeetingInPerson) {
		locationRules = append(locationRules, validation.Required.Error("is required for in-person events"))
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, rules.NotBlank, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 1000)),
		validation.Field(&r.Category, validation.Required, rules.OneOf(models.EventCategories...)),
		validation.Field(&r.Date, validation.Required, validation.By(futureDate(now))),
		validation.Field(&r.Time, validation.Required, rules.TimeOfDay),
		validation.Field(&r.LocationType, validation.Required, rules.OneOf(models.MeetingVirtual, models.MeetingInPerson)),
		validation.Field(&r.LocationDetail, locationRules...),
		validation.Field(&r.Agenda, validation.Length(0, 2000)),
		validation.Field(&r.MaxAttendees, validation.Min(1)),
	)
}

// Validate applies the domain rules against the current time
func (r *CreateEventRequest) Validate() error {
	return r.ValidateAt(time.Now())
}

// ToModel converts the request into a pending event owned by creatorID
func (r *CreateEventRequest) ToModel(creatorID int64) (*models.Event, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return &models.Event{
		Title:          r.Title,
		Description:    r.Description,
		Category:       models.EventCategory(r.Category),
		Date:           date,
		Time:           r.Time,
		LocationType:   models.MeetingType(r.LocationType),
		LocationDetail: r.LocationDetail,
		Agenda:         r.Agenda,
		MaxAttendees:   r.MaxAttendees,
		ContactInfo:    r.ContactInfo,
		CreatedBy:      creatorID,
		Status:         models.StatusPending,
	}, nil
}

func futureDate(now time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		date, err := ParseDate(s)
		if err != nil {
			return err
		}
		if !IsFutureDate(date, now) {
			return errors.New("must be a future date")
		}
		return nil
	}
}

// EventDetailResponse is an event with its attendee list
type EventDetailResponse struct {
	*models.Event
	Attendees []models.UserSummary `json:"attendees"`
}
