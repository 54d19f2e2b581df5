package models

// RoleType defines the user role type
type RoleType string

const (
	RoleUser   RoleType = "user"
	RoleAdmin  RoleType = "admin"
	RoleAlumni RoleType = "alumni"
)

// IsValid reports whether r is a known role
func (r RoleType) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleAlumni:
		return true
	}
	return false
}

// Visibility of a study group
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// MeetingType describes where a group or event takes place
type MeetingType string

const (
	MeetingVirtual  MeetingType = "virtual"
	MeetingInPerson MeetingType = "in-person"
)

// ClubCategory enumerates club categories
type ClubCategory string

const (
	ClubCategoryAcademic  ClubCategory = "Academic"
	ClubCategorySports    ClubCategory = "Sports"
	ClubCategoryCultural  ClubCategory = "Cultural"
	ClubCategoryTechnical ClubCategory = "Technical"
	ClubCategoryArts      ClubCategory = "Arts"
	ClubCategoryOther     ClubCategory = "Other"
)

// ClubCategories lists the accepted club categories
var ClubCategories = []ClubCategory{
	ClubCategoryAcademic, ClubCategorySports, ClubCategoryCultural,
	ClubCategoryTechnical, ClubCategoryArts, ClubCategoryOther,
}

// EventCategory enumerates event categories
type EventCategory string

const (
	EventCategoryAcademic EventCategory = "Academic"
	EventCategoryCultural EventCategory = "Cultural"
	EventCategorySports   EventCategory = "Sports"
	EventCategoryTech     EventCategory = "Tech"
	EventCategoryWorkshop EventCategory = "Workshop"
	EventCategoryOther    EventCategory = "Other"
)

// EventCategories lists the accepted event categories
var EventCategories = []EventCategory{
	EventCategoryAcademic, EventCategoryCultural, EventCategorySports,
	EventCategoryTech, EventCategoryWorkshop, EventCategoryOther,
}

// PostType enumerates club post kinds
type PostType string

const (
	PostAnnouncement PostType = "announcement"
	PostEvent        PostType = "event"
	PostUpdate       PostType = "update"
)

// AlumniStatus is the current occupation of an alumni
type AlumniStatus string

const (
	AlumniEmployed     AlumniStatus = "employed"
	AlumniSelfEmployed AlumniStatus = "self-employed"
	AlumniMasters      AlumniStatus = "masters"
	AlumniPhD          AlumniStatus = "phd"
	AlumniOther        AlumniStatus = "other"
)

// AlumniStatuses lists the accepted alumni statuses
var AlumniStatuses = []AlumniStatus{
	AlumniEmployed, AlumniSelfEmployed, AlumniMasters, AlumniPhD, AlumniOther,
}

// ProjectStatus is the lifecycle of a project
type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "open"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// ProjectStatuses lists the accepted project statuses
var ProjectStatuses = []ProjectStatus{ProjectOpen, ProjectInProgress, ProjectCompleted}
