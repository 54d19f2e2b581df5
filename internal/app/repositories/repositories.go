package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	StudyGroupRepository *StudyGroupRepository
	ClubRepository       *ClubRepository
	ClubPostRepository   *ClubPostRepository
	EventRepository      *EventRepository
	ConnectionRepository *ConnectionRepository
	ProjectRepository    *ProjectRepository
	StatsRepository      *StatsRepository

	GroupMembers   *MembershipRepository
	ClubMembers    *MembershipRepository
	EventAttendees *MembershipRepository
	ProjectMembers *MembershipRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	groupMembers := NewMembershipRepository(db, GroupMembers)
	clubMembers := NewMembershipRepository(db, ClubMembers)
	eventAttendees := NewMembershipRepository(db, EventAttendees)
	projectMembers := NewMembershipRepository(db, ProjectMembers)

	return &Repositories{
		UserRepository:       NewUserRepository(db),
		StudyGroupRepository: NewStudyGroupRepository(db, groupMembers),
		ClubRepository:       NewClubRepository(db, clubMembers),
		ClubPostRepository:   NewClubPostRepository(db),
		EventRepository:      NewEventRepository(db, eventAttendees),
		ConnectionRepository: NewConnectionRepository(db),
		ProjectRepository:    NewProjectRepository(db, projectMembers),
		StatsRepository:      NewStatsRepository(db),

		GroupMembers:   groupMembers,
		ClubMembers:    clubMembers,
		EventAttendees: eventAttendees,
		ProjectMembers: projectMembers,
	}
}
