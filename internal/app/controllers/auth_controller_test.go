package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) SignupAlumni(ctx context.Context, req *dto.AlumniSignupRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) UpdateMe(ctx context.Context, userID int64, req *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

func authRouter(svc *mockAuthService) *gin.Engine {
	c := NewAuthController(svc, zerolog.Nop())
	r := newRouter()
	r.POST("/auth/signup", c.Signup)
	r.POST("/auth/login", c.Login)
	r.GET("/auth/me", c.Me)
	return r
}

func TestAuthController_Signup(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Signup", mock.Anything, mock.MatchedBy(func(req *dto.SignupRequest) bool {
			return req.Email == "jane@campus.edu" && req.Year != nil && *req.Year == 2
		})).Return(&dto.AuthResponse{Token: "tok", TokenType: "Bearer", User: dto.UserResponse{ID: 1, Role: models.RoleUser}}, nil)

		w := perform(authRouter(svc), http.MethodPost, "/auth/signup", map[string]interface{}{
			"name": "Jane", "email": "jane@campus.edu", "password": "secret123", "course": "CS", "year": 2,
		})

		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Account created successfully", body.Message)
		assert.Contains(t, string(body.Data), `"token":"tok"`)
		svc.AssertExpectations(t)
	})

	t.Run("short password", func(t *testing.T) {
		svc := new(mockAuthService)

		w := perform(authRouter(svc), http.MethodPost, "/auth/signup", map[string]interface{}{
			"name": "Jane", "email": "jane@campus.edu", "password": "123", "course": "CS", "year": 2,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeValidationFailed, decode(t, w).Error.Code)
		svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Signup", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email already registered"))

		w := perform(authRouter(svc), http.MethodPost, "/auth/signup", map[string]interface{}{
			"name": "Jane", "email": "jane@campus.edu", "password": "secret123", "course": "CS", "year": 0,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Email already registered", body.Message)
		assert.Equal(t, dto.ErrorCodeEmailTaken, body.Error.Code)
	})
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"wrong password", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid credentials"), http.StatusUnauthorized},
		{"banned", apperrors.NewCustomError(apperrors.ErrAccountSuspended, "Your account has been suspended. Please contact admin."), http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockAuthService)
			svc.On("Login", mock.Anything, &dto.LoginRequest{Email: "jane@campus.edu", Password: "secret123"}).Return(nil, tc.err)

			w := perform(authRouter(svc), http.MethodPost, "/auth/login", map[string]string{
				"email": "jane@campus.edu", "password": "secret123",
			})

			assert.Equal(t, tc.status, w.Code)
			assert.False(t, decode(t, w).Success)
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthController_Me(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Me", mock.Anything, callerID).Return(&dto.UserResponse{ID: callerID, Name: "Jane"}, nil)

	w := perform(authRouter(svc), http.MethodGet, "/auth/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"name":"Jane"`)
}
