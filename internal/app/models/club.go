package models

import (
	"strings"
	"time"
)

// Club defines the 'clubs' table
type Club struct {
	ID           int64          `json:"id" db:"id" example:"1"`
	Name         string         `json:"name" db:"name" example:"Robotics Club"`
	Description  string         `json:"description" db:"description"`
	TeamSize     int            `json:"teamSize" db:"team_size" example:"25"`
	Category     ClubCategory   `json:"category" db:"category" example:"Technical"`
	ContactEmail string         `json:"contactEmail,omitempty" db:"contact_email"`
	FoundedYear  *int           `json:"foundedYear,omitempty" db:"founded_year" example:"2021"`
	CreatedBy    int64          `json:"createdBy" db:"created_by"`
	Status       ApprovalStatus `json:"status" db:"status" example:"pending"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`

	MemberCount int          `json:"memberCount"`
	Creator     *UserSummary `json:"creator,omitempty"`
}

// IsApproved reports whether the club is publicly visible
func (c *Club) IsApproved() bool { return c.Status == StatusApproved }

// ClubFilter narrows club listings. An empty Category or "all" disables the filter.
type ClubFilter struct {
	Search   string
	Category string
	Status   *ApprovalStatus
}

// CategoryFilter returns the category to filter on, or "" for none
func (f ClubFilter) CategoryFilter() string {
	if strings.EqualFold(f.Category, "all") {
		return ""
	}
	return f.Category
}

// ClubPatch holds the optional fields of a club update
type ClubPatch struct {
	Name         *string
	Description  *string
	TeamSize     *int
	Category     *ClubCategory
	ContactEmail *string
	FoundedYear  *int
}

// Apply copies the present fields onto c
func (p ClubPatch) Apply(c *Club) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.TeamSize != nil {
		c.TeamSize = *p.TeamSize
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.ContactEmail != nil {
		c.ContactEmail = NormalizeEmail(*p.ContactEmail)
	}
	if p.FoundedYear != nil {
		c.FoundedYear = p.FoundedYear
	}
}

// ClubPost defines the 'club_posts' table
type ClubPost struct {
	ID            int64      `json:"id" db:"id" example:"1"`
	ClubID        int64      `json:"clubId" db:"club_id" example:"1"`
	CreatedBy     int64      `json:"createdBy" db:"created_by"`
	Type          PostType   `json:"type" db:"type" example:"announcement"`
	Title         string     `json:"title" db:"title"`
	Content       string     `json:"content" db:"content"`
	EventDate     *time.Time `json:"eventDate,omitempty" db:"event_date"`
	EventTime     string     `json:"eventTime,omitempty" db:"event_time"`
	EventLocation string     `json:"eventLocation,omitempty" db:"event_location"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`

	Author *UserSummary `json:"author,omitempty"`
}
