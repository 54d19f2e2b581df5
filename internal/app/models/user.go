package models

import (
	"strings"
	"time"
)

// User defines the user model based on the 'users' table. Exactly one of Student
// or Alumni is populated, selected by Role; administrators carry neither.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Jane Doe"`
	Email     string    `json:"email" db:"email" example:"jane@campus.edu"`
	Password  string    `json:"-" db:"password"`
	Role      RoleType  `json:"role" db:"role" example:"user"`
	IsBanned  bool      `json:"isBanned" db:"is_banned" example:"false"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Student *StudentProfile `json:"student,omitempty"`
	Alumni  *AlumniProfile  `json:"alumni,omitempty"`
}

// IsAdmin reports whether the user is an administrator
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// IsAlumni reports whether the user signed up as alumni
func (u *User) IsAlumni() bool { return u != nil && u.Role == RoleAlumni }

// Summary returns the public projection used in member lists
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// StudentProfile defines the 'student_profiles' table
type StudentProfile struct {
	UserID int64  `json:"-" db:"user_id"`
	Course string `json:"course" db:"course" example:"Computer Science"`
	Year   int    `json:"year" db:"year" example:"2"`
}

// AlumniProfile defines the 'alumni_profiles' table
type AlumniProfile struct {
	UserID         int64        `json:"-" db:"user_id"`
	PassingYear    int          `json:"passingYear" db:"passing_year" example:"2019"`
	CurrentStatus  AlumniStatus `json:"currentStatus" db:"current_status" example:"employed"`
	CurrentCompany string       `json:"currentCompany,omitempty" db:"current_company"`
	JobTitle       string       `json:"jobTitle,omitempty" db:"job_title"`
	Location       string       `json:"location,omitempty" db:"location"`
	LinkedIn       string       `json:"linkedIn,omitempty" db:"linked_in"`
	Bio            string       `json:"bio,omitempty" db:"bio"`
}

// UserSummary is the reduced user view embedded in other resources
type UserSummary struct {
	ID    int64    `json:"id" example:"1"`
	Name  string   `json:"name" example:"Jane Doe"`
	Email string   `json:"email" example:"jane@campus.edu"`
	Role  RoleType `json:"role" example:"user"`
}

// NormalizeEmail lowercases and trims an address before it is stored or compared
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserPatch holds the optional fields a user may change on their own account.
// Course and Year only apply to students.
type UserPatch struct {
	Name   *string
	Course *string
	Year   *int
}

// IsEmpty reports whether the patch changes nothing
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Course == nil && p.Year == nil
}

// Apply copies the present fields onto u
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if u.Student == nil {
		return
	}
	if p.Course != nil {
		u.Student.Course = strings.TrimSpace(*p.Course)
	}
	if p.Year != nil {
		u.Student.Year = *p.Year
	}
}

// AlumniPatch holds the optional alumni profile fields
type AlumniPatch struct {
	Name           *string
	PassingYear    *int
	CurrentStatus  *AlumniStatus
	CurrentCompany *string
	JobTitle       *string
	Location       *string
	LinkedIn       *string
	Bio            *string
}

// Apply copies the present fields onto u, creating the alumni profile if missing
func (p AlumniPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if u.Alumni == nil {
		u.Alumni = &AlumniProfile{UserID: u.ID}
	}
	a := u.Alumni
	if p.PassingYear != nil {
		a.PassingYear = *p.PassingYear
	}
	if p.CurrentStatus != nil {
		a.CurrentStatus = *p.CurrentStatus
	}
	if p.CurrentCompany != nil {
		a.CurrentCompany = *p.CurrentCompany
	}
	if p.JobTitle != nil {
		a.JobTitle = *p.JobTitle
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.LinkedIn != nil {
		a.LinkedIn = *p.LinkedIn
	}
	if p.Bio != nil {
		a.Bio = *p.Bio
	}
}

// UserFilter narrows admin and directory listings
type UserFilter struct {
	Role          *RoleType
	IncludeBanned bool
}

// AdminUserView is a user row enriched with the number of groups joined
type AdminUserView struct {
	User
	GroupsJoinedCount int `json:"groupsJoinedCount"`
}
