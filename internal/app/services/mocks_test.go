package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/campusconnect/backend/internal/app/models"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateStudent(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) CreateAlumni(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) CreateAdmin(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) ListAlumni(ctx context.Context, offset, limit uint64) ([]*models.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) SetBanned(ctx context.Context, id int64, banned bool) error {
	return m.Called(ctx, id, banned).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) ListWithGroupCounts(ctx context.Context) ([]*models.AdminUserView, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*models.AdminUserView)
	return users, args.Error(1)
}

type mockGroupRepo struct{ mock.Mock }

func (m *mockGroupRepo) Create(ctx context.Context, g *models.StudyGroup) error {
	return m.Called(ctx, g).Error(0)
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id int64) (*models.StudyGroup, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*models.StudyGroup)
	return g, args.Error(1)
}

func (m *mockGroupRepo) ListPublic(ctx context.Context, filter models.StudyGroupFilter, offset, limit uint64) ([]*models.StudyGroup, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	groups, _ := args.Get(0).([]*models.StudyGroup)
	return groups, args.Get(1).(int64), args.Error(2)
}

func (m *mockGroupRepo) ListByMember(ctx context.Context, userID int64) ([]*models.StudyGroup, error) {
	args := m.Called(ctx, userID)
	groups, _ := args.Get(0).([]*models.StudyGroup)
	return groups, args.Error(1)
}

func (m *mockGroupRepo) ListAll(ctx context.Context) ([]*models.StudyGroup, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]*models.StudyGroup)
	return groups, args.Error(1)
}

func (m *mockGroupRepo) Update(ctx context.Context, g *models.StudyGroup) error {
	return m.Called(ctx, g).Error(0)
}

func (m *mockGroupRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockGroupRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockMembers struct{ mock.Mock }

func (m *mockMembers) Join(ctx context.Context, entityID, userID int64) error {
	return m.Called(ctx, entityID, userID).Error(0)
}

func (m *mockMembers) Add(ctx context.Context, entityID, userID int64) error {
	return m.Called(ctx, entityID, userID).Error(0)
}

func (m *mockMembers) Remove(ctx context.Context, entityID, userID int64) error {
	return m.Called(ctx, entityID, userID).Error(0)
}

func (m *mockMembers) IsMember(ctx context.Context, entityID, userID int64) (bool, error) {
	args := m.Called(ctx, entityID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMembers) Count(ctx context.Context, entityID int64) (int, error) {
	args := m.Called(ctx, entityID)
	return args.Int(0), args.Error(1)
}

func (m *mockMembers) ListMembers(ctx context.Context, entityID int64) ([]models.UserSummary, error) {
	args := m.Called(ctx, entityID)
	members, _ := args.Get(0).([]models.UserSummary)
	return members, args.Error(1)
}

type mockClubRepo struct{ mock.Mock }

func (m *mockClubRepo) Create(ctx context.Context, c *models.Club) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockClubRepo) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Club)
	return c, args.Error(1)
}

func (m *mockClubRepo) List(ctx context.Context, filter models.ClubFilter, offset, limit uint64) ([]*models.Club, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	clubs, _ := args.Get(0).([]*models.Club)
	return clubs, args.Get(1).(int64), args.Error(2)
}

func (m *mockClubRepo) Update(ctx context.Context, c *models.Club) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockClubRepo) SetStatus(ctx context.Context, id int64, status models.ApprovalStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockClubRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockClubRepo) CountByStatus(ctx context.Context, status *models.ApprovalStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type mockPostRepo struct{ mock.Mock }

func (m *mockPostRepo) CreateIfApproved(ctx context.Context, p *models.ClubPost) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (*models.ClubPost, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.ClubPost)
	return p, args.Error(1)
}

func (m *mockPostRepo) ListByClub(ctx context.Context, clubID int64) ([]*models.ClubPost, error) {
	args := m.Called(ctx, clubID)
	posts, _ := args.Get(0).([]*models.ClubPost)
	return posts, args.Error(1)
}

func (m *mockPostRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) Create(ctx context.Context, e *models.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*models.Event)
	return e, args.Error(1)
}

func (m *mockEventRepo) List(ctx context.Context, filter models.EventFilter, offset, limit uint64) ([]*models.Event, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	events, _ := args.Get(0).([]*models.Event)
	return events, args.Get(1).(int64), args.Error(2)
}

func (m *mockEventRepo) ListByCreator(ctx context.Context, userID int64) ([]*models.Event, error) {
	args := m.Called(ctx, userID)
	events, _ := args.Get(0).([]*models.Event)
	return events, args.Error(1)
}

func (m *mockEventRepo) SetStatus(ctx context.Context, id int64, status models.ApprovalStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockEventRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEventRepo) CountByStatus(ctx context.Context, status *models.ApprovalStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type mockConnRepo struct{ mock.Mock }

func (m *mockConnRepo) Create(ctx context.Context, c *models.Connection) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockConnRepo) GetByID(ctx context.Context, id int64) (*models.Connection, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Connection)
	return c, args.Error(1)
}

func (m *mockConnRepo) ListIncoming(ctx context.Context, alumniID int64) ([]*models.Connection, error) {
	args := m.Called(ctx, alumniID)
	conns, _ := args.Get(0).([]*models.Connection)
	return conns, args.Error(1)
}

func (m *mockConnRepo) ListSent(ctx context.Context, studentID int64) ([]*models.Connection, error) {
	args := m.Called(ctx, studentID)
	conns, _ := args.Get(0).([]*models.Connection)
	return conns, args.Error(1)
}

func (m *mockConnRepo) ResolvePending(ctx context.Context, c *models.Connection, next models.ConnectionStatus) error {
	return m.Called(ctx, c, next).Error(0)
}

type mockProjectRepo struct{ mock.Mock }

func (m *mockProjectRepo) Create(ctx context.Context, p *models.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Project)
	return p, args.Error(1)
}

func (m *mockProjectRepo) ListOpen(ctx context.Context, filter models.ProjectFilter, offset, limit uint64) ([]*models.Project, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	projects, _ := args.Get(0).([]*models.Project)
	return projects, args.Get(1).(int64), args.Error(2)
}

func (m *mockProjectRepo) ListForUser(ctx context.Context, userID int64) ([]*models.Project, error) {
	args := m.Called(ctx, userID)
	projects, _ := args.Get(0).([]*models.Project)
	return projects, args.Error(1)
}

func (m *mockProjectRepo) Update(ctx context.Context, p *models.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProjectRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProjectRepo) Apply(ctx context.Context, a *models.ProjectApplication) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockProjectRepo) ListApplications(ctx context.Context, projectID int64) ([]*models.ProjectApplication, error) {
	args := m.Called(ctx, projectID)
	apps, _ := args.Get(0).([]*models.ProjectApplication)
	return apps, args.Error(1)
}

func (m *mockProjectRepo) ApproveApplication(ctx context.Context, projectID, applicantID int64) (*models.ProjectApplication, error) {
	args := m.Called(ctx, projectID, applicantID)
	a, _ := args.Get(0).(*models.ProjectApplication)
	return a, args.Error(1)
}

func (m *mockProjectRepo) RejectApplication(ctx context.Context, projectID, applicantID int64) (*models.ProjectApplication, error) {
	args := m.Called(ctx, projectID, applicantID)
	a, _ := args.Get(0).(*models.ProjectApplication)
	return a, args.Error(1)
}

func (m *mockProjectRepo) Leave(ctx context.Context, projectID, userID int64) error {
	return m.Called(ctx, projectID, userID).Error(0)
}

type mockStatsRepo struct{ mock.Mock }

func (m *mockStatsRepo) Stats(ctx context.Context) (*models.AdminStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*models.AdminStats)
	return s, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendWelcomeEmail(toEmail, toName string) error {
	return m.Called(toEmail, toName).Error(0)
}

func (m *mockMailer) SendConnectionRequestEmail(toEmail, toName, fromName, message string) error {
	return m.Called(toEmail, toName, fromName, message).Error(0)
}

type sentNotification struct {
	UserID int64
	Kind   string
	Data   interface{}
}

// recordingNotifier keeps every notification for assertions
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) Notify(userID int64, kind string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{UserID: userID, Kind: kind, Data: data})
}

func (n *recordingNotifier) all() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}

func synchronous(f func()) { f() }
