package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appModels "github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/config"
	pkgAuth "github.com/campusconnect/backend/internal/pkg/auth"
)

type mockAdminStore struct {
	mock.Mock
}

func (m *mockAdminStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockAdminStore) CreateAdmin(ctx context.Context, u *appModels.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func adminConfig(email, password string) *config.Config {
	cfg := &config.Config{}
	cfg.Admin.Name = "Admin"
	cfg.Admin.Email = email
	cfg.Admin.Password = password
	return cfg
}

func TestCreateDefaultData_CreatesAdmin(t *testing.T) {
	store := new(mockAdminStore)
	store.On("EmailExists", mock.Anything, "admin@campus.edu").Return(false, nil)
	store.On("CreateAdmin", mock.Anything, mock.MatchedBy(func(u *appModels.User) bool {
		return u.Email == "admin@campus.edu" && pkgAuth.CheckPassword(u.Password, "secret123")
	})).Return(nil)

	err := CreateDefaultData(context.Background(), store, adminConfig(" Admin@Campus.edu ", "secret123"), zerolog.Nop())
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestCreateDefaultData_SkipsExisting(t *testing.T) {
	store := new(mockAdminStore)
	store.On("EmailExists", mock.Anything, "admin@campus.edu").Return(true, nil)

	err := CreateDefaultData(context.Background(), store, adminConfig("admin@campus.edu", "secret123"), zerolog.Nop())
	require.NoError(t, err)
	store.AssertNotCalled(t, "CreateAdmin", mock.Anything, mock.Anything)
}

func TestCreateDefaultData_NotConfigured(t *testing.T) {
	store := new(mockAdminStore)
	err := CreateDefaultData(context.Background(), store, adminConfig("", ""), zerolog.Nop())
	assert.NoError(t, err)
	store.AssertNotCalled(t, "EmailExists", mock.Anything, mock.Anything)
}
