// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
)

// parseIDParam parses a positive id path parameter. On failure it writes a 400
// and returns false.
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+paramName).
			WithField(paramName).
			WithDetails(paramName + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// splitList splits a comma separated query value, dropping blanks
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// statusQuery reads the optional ?status= filter. An unknown status writes a 400
// and returns false.
func statusQuery(ctx *gin.Context) (*models.ApprovalStatus, bool) {
	raw := ctx.Query("status")
	if raw == "" || strings.EqualFold(raw, "all") {
		return nil, true
	}
	status := models.ApprovalStatus(strings.ToLower(raw))
	if !status.IsValid() {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status").
			WithField("status").
			WithDetails("status must be one of: pending, approved, denied")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &status, true
}

func ok(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, ""))
}

func created(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(data, message))
}

func done(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, message))
}
