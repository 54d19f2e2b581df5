package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/backend/internal/app/models/dto"
)

// validatable is implemented by request bodies carrying domain rules
type validatable interface {
	Validate() error
}

// BindJSON binds the request body into req and applies its Validate rules when it
// has any. On failure it writes a VAL_001 response and returns false.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	if v, ok := req.(validatable); ok {
		if err := v.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return false
		}
	}
	return true
}

// BindOptionalJSON is BindJSON for endpoints whose body may be empty
func BindOptionalJSON(c *gin.Context, req interface{}) bool {
	if c.Request.ContentLength == 0 {
		if v, ok := req.(validatable); ok {
			if err := v.Validate(); err != nil {
				c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
				return false
			}
		}
		return true
	}
	return BindJSON(c, req)
}
