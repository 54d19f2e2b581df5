package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/backend/internal/app/models/dto"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1 // pages are 1-based
)

// Page is a normalized 1-based page request
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset of the page
func (p Page) Offset() uint64 {
	offset, _ := CalculateOffsetLimit(p.Number, p.Size)
	return offset
}

// Limit returns the row limit of the page
func (p Page) Limit() uint64 {
	_, limit := CalculateOffsetLimit(p.Number, p.Size)
	return uint64(limit)
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 || size > MaxPageSize {
		limit = DefaultPageSize
	} else {
		limit = size
	}

	if page < 1 {
		page = DefaultPage
	}

	// stays within bigint so far pages come back empty
	skipped := int64(page - 1)
	if maxSkipped := math.MaxInt64 / int64(limit); skipped > maxSkipped {
		skipped = maxSkipped
	}
	offset = uint64(skipped * int64(limit))
	return offset, limit
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems int64, page Page) dto.PaginationInfo {
	size := page.Size
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	current := page.Number
	if current < 1 {
		current = DefaultPage
	}

	totalPages := 1
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	}

	return dto.PaginationInfo{
		CurrentPage: current,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams extracts the page and size query parameters, falling back to defaults
func ParsePaginationParams(c *gin.Context) Page {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return Page{Number: page, Size: size}
}
