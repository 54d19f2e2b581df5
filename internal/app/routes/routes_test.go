package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/controllers"
	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/middleware"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/auth"
	"github.com/campusconnect/backend/internal/pkg/websocket"
)

type users map[int64]*models.User

func (u users) GetByID(_ context.Context, id int64) (*models.User, error) {
	if user, found := u[id]; found {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

// newEngine mounts the route table. Every request in these tests is stopped by a
// gate before a handler runs, so the controllers carry no services.
func newEngine(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "routes-secret", TokenTTL: time.Hour})
	directory := users{
		1: {ID: 1, Name: "Student", Role: models.RoleUser},
		2: {ID: 2, Name: "Alumna", Role: models.RoleAlumni},
	}
	log := zerolog.Nop()

	ctrl := &Controllers{
		Auth:       controllers.NewAuthController(nil, log),
		Group:      controllers.NewGroupController(nil, log),
		Club:       controllers.NewClubController(nil, log),
		Event:      controllers.NewEventController(nil, log),
		Connection: controllers.NewConnectionController(nil, log),
		Alumni:     controllers.NewAlumniController(nil, log),
		Project:    controllers.NewProjectController(nil, log),
		Admin:      controllers.NewAdminController(nil, nil, log),
		Health:     controllers.NewHealthController(nil, log),
	}

	router := gin.New()
	require.NotPanics(t, func() {
		SetupRouter(router, ctrl,
			middleware.NewAuthMiddleware(jwtService, directory, log),
			websocket.NewHandler(websocket.NewHub(log), nil, log))
	})
	return router, jwtService
}

func call(t *testing.T, r http.Handler, jwtService *auth.JWTService, userID int64, method, path string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if userID != 0 {
		token, _, err := jwtService.GenerateToken(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRoutes_RequireAuthentication(t *testing.T) {
	r, jwtService := newEngine(t)

	for _, path := range []string{
		"/api/v1/auth/me",
		"/api/v1/groups",
		"/api/v1/clubs/1",
		"/api/v1/events/my-events",
		"/api/v1/connections/sent",
		"/api/v1/alumni",
		"/api/v1/projects",
		"/api/v1/admin/stats",
		"/api/v1/notifications/ws",
	} {
		assert.Equal(t, http.StatusUnauthorized, call(t, r, jwtService, 0, http.MethodGet, path), path)
	}
}

func TestRoutes_RoleGates(t *testing.T) {
	r, jwtService := newEngine(t)

	tests := []struct {
		method string
		path   string
		userID int64
	}{
		{http.MethodGet, "/api/v1/admin/stats", 1},
		{http.MethodGet, "/api/v1/admin/users", 2},
		{http.MethodPut, "/api/v1/admin/clubs/3/approve", 1},
		{http.MethodGet, "/api/v1/connections/incoming", 1},
		{http.MethodPut, "/api/v1/connections/4/accept", 1},
		{http.MethodPut, "/api/v1/connections/4/reject", 1},
		{http.MethodPut, "/api/v1/alumni/profile", 1},
	}

	for _, tc := range tests {
		assert.Equal(t, http.StatusForbidden, call(t, r, jwtService, tc.userID, tc.method, tc.path), tc.method+" "+tc.path)
	}
}

func TestRoutes_QueryTokenOnlyOnWebsocket(t *testing.T) {
	r, jwtService := newEngine(t)
	token, _, err := jwtService.GenerateToken(1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, call(t, r, jwtService, 0, http.MethodGet, "/api/v1/auth/me?token="+token))
	assert.Equal(t, http.StatusUnauthorized, call(t, r, jwtService, 0, http.MethodGet, "/api/v1/groups?token="+token))
}
