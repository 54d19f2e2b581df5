package models

import (
	"strings"
	"time"
)

// DefaultGroupMaxMembers is applied when a group is created without a capacity
const DefaultGroupMaxMembers = 30

// StudyGroup defines the 'study_groups' table
type StudyGroup struct {
	ID           int64       `json:"id" db:"id" example:"1"`
	Name         string      `json:"name" db:"name" example:"Algorithms Night"`
	Subject      string      `json:"subject" db:"subject" example:"CS301"`
	Description  string      `json:"description,omitempty" db:"description"`
	Semester     string      `json:"semester,omitempty" db:"semester" example:"Fall 2026"`
	Tags         []string    `json:"tags" db:"tags"`
	Visibility   Visibility  `json:"visibility" db:"visibility" example:"public"`
	CreatedBy    int64       `json:"createdBy" db:"created_by" example:"1"`
	MaxMembers   int         `json:"maxMembers" db:"max_members" example:"30"`
	MeetingType  MeetingType `json:"meetingType" db:"meeting_type" example:"virtual"`
	Location     string      `json:"location,omitempty" db:"location"`
	ScheduleDays []string    `json:"scheduleDays" db:"schedule_days"`
	StartTime    string      `json:"startTime,omitempty" db:"start_time" example:"18:00"`
	Duration     string      `json:"duration,omitempty" db:"duration" example:"2h"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`

	MemberCount int          `json:"memberCount"`
	Creator     *UserSummary `json:"creator,omitempty"`
}

// NormalizeTags lowercases, trims and de-duplicates tags, dropping blanks
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// StudyGroupFilter narrows the public group listing
type StudyGroupFilter struct {
	Subject string
	Tags    []string
}

// StudyGroupPatch holds the optional fields of a group update
type StudyGroupPatch struct {
	Name         *string
	Subject      *string
	Description  *string
	Semester     *string
	Tags         *[]string
	Visibility   *Visibility
	MaxMembers   *int
	MeetingType  *MeetingType
	Location     *string
	ScheduleDays *[]string
	StartTime    *string
	Duration     *string
}

// Apply copies the present fields onto g
func (p StudyGroupPatch) Apply(g *StudyGroup) {
	if p.Name != nil {
		g.Name = strings.TrimSpace(*p.Name)
	}
	if p.Subject != nil {
		g.Subject = strings.TrimSpace(*p.Subject)
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Semester != nil {
		g.Semester = *p.Semester
	}
	if p.Tags != nil {
		g.Tags = NormalizeTags(*p.Tags)
	}
	if p.Visibility != nil {
		g.Visibility = *p.Visibility
	}
	if p.MaxMembers != nil {
		g.MaxMembers = *p.MaxMembers
	}
	if p.MeetingType != nil {
		g.MeetingType = *p.MeetingType
	}
	if p.Location != nil {
		g.Location = *p.Location
	}
	if p.ScheduleDays != nil {
		g.ScheduleDays = *p.ScheduleDays
	}
	if p.StartTime != nil {
		g.StartTime = *p.StartTime
	}
	if p.Duration != nil {
		g.Duration = *p.Duration
	}
}
