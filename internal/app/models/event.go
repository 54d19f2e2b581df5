package models

import (
	"strings"
	"time"
)

// Event defines the 'events' table. MaxAttendees nil means unlimited.
type Event struct {
	ID             int64          `json:"id" db:"id" example:"1"`
	Title          string         `json:"title" db:"title" example:"Career Fair"`
	Description    string         `json:"description" db:"description"`
	Category       EventCategory  `json:"category" db:"category" example:"Academic"`
	Date           time.Time      `json:"date" db:"date"`
	Time           string         `json:"time" db:"time" example:"14:00"`
	LocationType   MeetingType    `json:"locationType" db:"location_type" example:"in-person"`
	LocationDetail string         `json:"locationDetail,omitempty" db:"location_detail"`
	Agenda         string         `json:"agenda,omitempty" db:"agenda"`
	MaxAttendees   *int           `json:"maxAttendees,omitempty" db:"max_attendees"`
	ContactInfo    string         `json:"contactInfo,omitempty" db:"contact_info"`
	CreatedBy      int64          `json:"createdBy" db:"created_by"`
	Status         ApprovalStatus `json:"status" db:"status" example:"pending"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`

	AttendeeCount int          `json:"attendeeCount"`
	Creator       *UserSummary `json:"creator,omitempty"`
}

// IsApproved reports whether the event is publicly visible
func (e *Event) IsApproved() bool { return e.Status == StatusApproved }

// EventFilter narrows event listings. "all" disables a filter.
type EventFilter struct {
	Category     string
	LocationType string
	Status       *ApprovalStatus
}

// CategoryFilter returns the category to filter on, or "" for none
func (f EventFilter) CategoryFilter() string {
	if strings.EqualFold(f.Category, "all") {
		return ""
	}
	return f.Category
}

// LocationTypeFilter returns the location type to filter on, or "" for none
func (f EventFilter) LocationTypeFilter() string {
	if strings.EqualFold(f.LocationType, "all") {
		return ""
	}
	return f.LocationType
}
