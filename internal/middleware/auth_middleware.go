package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/campusconnect/backend/internal/app/auth"
	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextUser   = "user"
)

// MsgAccountSuspended is returned for every request made with a banned account
const MsgAccountSuspended = "Your account has been suspended. Please contact admin."

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	users      appAuth.UserLookup
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, users appAuth.UserLookup, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		logger:     logger,
	}
}

// JWTAuth validates the bearer token from the Authorization header and loads its
// user. Unknown users are unauthenticated; banned users are refused.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return m.authenticate(false)
}

// WebsocketAuth is JWTAuth for websocket upgrades. Browsers cannot set headers on
// the upgrade request, so the token query parameter is accepted as well.
func (m *AuthMiddleware) WebsocketAuth() gin.HandlerFunc {
	return m.authenticate(true)
}

func (m *AuthMiddleware) authenticate(allowQueryToken bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := tokenFromRequest(c, allowQueryToken)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", err.Error())
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			code, details := dto.ErrorCodeInvalidToken, "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				code, details = dto.ErrorCodeExpiredToken, "Token has expired"
			}
			abortUnauthorized(c, code, "Authentication failed", details)
			return
		}

		user, err := m.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication failed", "User no longer exists")
				return
			}
			m.logger.Error().Err(err).Int64("userID", claims.UserID).Msg("Failed to load authenticated user")
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		if user.IsBanned {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeAccountSuspended, MsgAccountSuspended)))
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, user)
		c.Next()
	}
}

// AdminRequired rejects users without the admin role. It must run after JWTAuth.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return roleRequired(models.RoleAdmin, appAuth.MsgAdminRequired)
}

// AlumniRequired rejects users without the alumni role. It must run after JWTAuth.
func (m *AuthMiddleware) AlumniRequired() gin.HandlerFunc {
	return roleRequired(models.RoleAlumni, appAuth.MsgAlumniRequired)
}

func roleRequired(role models.RoleType, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "User information not found")
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeForbidden, message)))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by JWTAuth, or nil
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// CurrentUserID returns the id of the user loaded by JWTAuth, or 0
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

// tokenFromRequest reads the bearer token from the Authorization header, then from
// the token query parameter when allowQuery is set
func tokenFromRequest(c *gin.Context, allowQuery bool) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		return auth.ExtractBearerToken(header)
	}
	if !allowQuery {
		return "", errors.New("authorization header missing")
	}
	if token := strings.TrimSpace(c.Query("token")); token != "" {
		return token, nil
	}
	return "", errors.New("authorization header missing")
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message, details string) {
	detail := dto.NewErrorDetail(code, message).WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
}
