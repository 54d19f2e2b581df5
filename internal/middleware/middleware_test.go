package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers map[int64]*models.User

func (f fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Error   *dto.ErrorDetail `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newAuthRouter(users fakeUsers) (*gin.Engine, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenTTL: time.Hour})
	m := NewAuthMiddleware(jwtService, users, zerolog.Nop())

	r := gin.New()
	protected := r.Group("/", m.JWTAuth())
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c), "name": CurrentUser(c).Name})
	})
	protected.GET("/admin", m.AdminRequired(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	protected.GET("/alumni", m.AlumniRequired(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/ws", m.WebsocketAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r, jwtService
}

func request(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	users := fakeUsers{
		1: {ID: 1, Name: "Jane", Role: models.RoleUser},
		2: {ID: 2, Name: "Banned", Role: models.RoleUser, IsBanned: true},
	}
	r, jwtService := newAuthRouter(users)
	token := func(id int64) string {
		tok, _, err := jwtService.GenerateToken(id)
		require.NoError(t, err)
		return tok
	}

	t.Run("missing token", func(t *testing.T) {
		w := request(r, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, decode(t, w).Error.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := request(r, "/me", "not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidToken, decode(t, w).Error.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := request(r, "/me", token(42))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("banned user", func(t *testing.T) {
		w := request(r, "/me", token(2))
		assert.Equal(t, http.StatusForbidden, w.Code)
		body := decode(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, MsgAccountSuspended, body.Message)
	})

	t.Run("valid token", func(t *testing.T) {
		w := request(r, "/me", token(1))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"name":"Jane"}`, w.Body.String())
	})

	t.Run("token in query is refused on regular routes", func(t *testing.T) {
		w := request(r, "/me?token="+token(1), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, decode(t, w).Error.Code)
	})

	t.Run("token in query on websocket upgrade", func(t *testing.T) {
		w := request(r, "/ws?token="+token(1), "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("websocket upgrade still refuses banned users", func(t *testing.T) {
		w := request(r, "/ws?token="+token(2), "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRoleGates(t *testing.T) {
	users := fakeUsers{
		1: {ID: 1, Role: models.RoleUser},
		2: {ID: 2, Role: models.RoleAdmin},
		3: {ID: 3, Role: models.RoleAlumni},
	}
	r, jwtService := newAuthRouter(users)
	token := func(id int64) string {
		tok, _, _ := jwtService.GenerateToken(id)
		return tok
	}

	w := request(r, "/admin", token(1))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access required.", decode(t, w).Message)

	assert.Equal(t, http.StatusNoContent, request(r, "/admin", token(2)).Code)

	w = request(r, "/alumni", token(2))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Alumni access required.", decode(t, w).Message)

	assert.Equal(t, http.StatusNoContent, request(r, "/alumni", token(3)).Code)
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"validation", apperrors.NewValidationError("name is required", nil), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "name is required"},
		{"conflict", apperrors.NewConflictError("A club with this name already exists"), http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "A club with this name already exists"},
		{"capacity", apperrors.NewCapacityExceededError("Group is full"), http.StatusBadRequest, dto.ErrorCodeCapacityExceeded, "Group is full"},
		{"already member", apperrors.NewCustomError(apperrors.ErrAlreadyMember, "Already a member"), http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Already a member"},
		{"transition", apperrors.NewInvalidTransitionError("Cannot move status to \"pending\""), http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Cannot move status to \"pending\""},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"suspended", apperrors.ErrAccountSuspended, http.StatusForbidden, dto.ErrorCodeAccountSuspended, MsgAccountSuspended},
		{"private group", apperrors.NewCustomError(apperrors.ErrNotJoinable, "Cannot join private group"), http.StatusForbidden, dto.ErrorCodeForbidden, "Cannot join private group"},
		{"forbidden", apperrors.NewForbiddenError("Only the owner"), http.StatusForbidden, dto.ErrorCodeForbidden, "Only the owner"},
		{"not found", apperrors.NewResourceNotFoundError("Group not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Group not found"},
		{"wrapped not found", fmt.Errorf("lookup: %w", apperrors.ErrUserNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleAPIError_HidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	HandleAPIError(c, errors.New("pq: password authentication failed"))
	assert.NotContains(t, w.Body.String(), "password authentication")
}

type sampleRequest struct {
	Name  string `json:"name" binding:"required"`
	Count int    `json:"count"`
}

func (r *sampleRequest) Validate() error {
	if r.Count > 3 {
		return apperrors.NewValidationError("count must be at most 3", nil)
	}
	return nil
}

func TestBindJSON(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req sampleRequest
		if !BindJSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, req)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "name is required", body.Message)

	w = post(`{"name":"a","count":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decode(t, w).Error.Code)

	w = post(`{"name":"a","count":2}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(requestid.New(), RequestLogger(zerolog.New(&buf)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusTeapot, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping?x=1", nil)
	req.Header.Set("X-Request-ID", "req-123")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/ping?x=1", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.Equal(t, "req-123", line["requestID"])
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, decode(t, w).Error.Code)
}
