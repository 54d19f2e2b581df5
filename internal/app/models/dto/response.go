package dto

// APIResponse is the success envelope returned by every handler
type APIResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty" example:"Operation completed successfully"`
}

// NewSuccessResponse wraps data in the success envelope
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// PaginationInfo describes a page of results
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"20"`
	TotalItems  int64 `json:"totalItems" example:"93"`
}

// PageResponse is a paginated list payload
type PageResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewPageResponse builds a paginated payload
func NewPageResponse(items interface{}, pagination PaginationInfo) PageResponse {
	return PageResponse{Items: items, Pagination: pagination}
}

// MessageResponse represents a response carrying only a message
type MessageResponse struct {
	Message string `json:"message"`
}
