package dto

import "time"

// APIResponse wraps every successful payload
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewAPIResponse wraps data in a success envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data, Timestamp: time.Now()}
}

// SuccessResponse is the payload of endpoints that only acknowledge
type SuccessResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// PaginationInfo describes the page of a list response
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"20"`
	TotalItems  int64 `json:"totalItems" example:"93"`
}

// HealthResponse is returned by /health
type HealthResponse struct {
	Status          string    `json:"status" example:"healthy"`
	Database        string    `json:"database" example:"connected"`
	ConsultantCount int64     `json:"consultantCount" example:"12"`
	ResumeExtractor string    `json:"resumeExtractor,omitempty" example:"closed"`
	Timestamp       time.Time `json:"timestamp"`
}
