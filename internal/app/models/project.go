package models

import (
	"strings"
	"time"
)

// Project defines the 'projects' table
type Project struct {
	ID          int64         `json:"id" db:"id" example:"1"`
	Title       string        `json:"title" db:"title" example:"Campus Navigator"`
	Description string        `json:"description" db:"description"`
	TechStack   []string      `json:"techStack" db:"tech_stack"`
	MaxMembers  int           `json:"maxMembers" db:"max_members" example:"4"`
	Deadline    *time.Time    `json:"deadline,omitempty" db:"deadline"`
	Status      ProjectStatus `json:"status" db:"status" example:"open"`
	CreatedBy   int64         `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`

	MemberCount int          `json:"memberCount"`
	Creator     *UserSummary `json:"creator,omitempty"`
}

// ProjectFilter narrows the open project listing
type ProjectFilter struct {
	TechStack []string
	Title     string
}

// NormalizeTechStack trims entries and drops blanks and duplicates, keeping case
func NormalizeTechStack(stack []string) []string {
	out := make([]string, 0, len(stack))
	seen := make(map[string]struct{}, len(stack))
	for _, s := range stack {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ProjectPatch holds the optional fields of a project update
type ProjectPatch struct {
	Title       *string
	Description *string
	TechStack   *[]string
	MaxMembers  *int
	Deadline    *time.Time
	Status      *ProjectStatus
}

// Apply copies the present fields onto p
func (pp ProjectPatch) Apply(p *Project) {
	if pp.Title != nil {
		p.Title = strings.TrimSpace(*pp.Title)
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.TechStack != nil {
		p.TechStack = NormalizeTechStack(*pp.TechStack)
	}
	if pp.MaxMembers != nil {
		p.MaxMembers = *pp.MaxMembers
	}
	if pp.Deadline != nil {
		p.Deadline = pp.Deadline
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
}

// ProjectApplication defines the 'project_applications' table
type ProjectApplication struct {
	ID          int64             `json:"id" db:"id" example:"1"`
	ProjectID   int64             `json:"projectId" db:"project_id"`
	ApplicantID int64             `json:"applicantId" db:"applicant_id"`
	Message     string            `json:"message,omitempty" db:"message"`
	Status      ApplicationStatus `json:"status" db:"status" example:"pending"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	ResolvedAt  *time.Time        `json:"resolvedAt,omitempty" db:"resolved_at"`

	Applicant *UserSummary `json:"applicant,omitempty"`
}

// AdminStats is the dashboard summary
type AdminStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	BannedUsers   int64 `json:"bannedUsers"`
	TotalGroups   int64 `json:"totalGroups"`
	TotalClubs    int64 `json:"totalClubs"`
	PendingClubs  int64 `json:"pendingClubs"`
	TotalEvents   int64 `json:"totalEvents"`
	PendingEvents int64 `json:"pendingEvents"`
	TotalProjects int64 `json:"totalProjects"`
}
