package models

import "go-photo-validator/pkg/taxonomy"

// URLValidationRequest asks the service to fetch and validate a remote photo.
type URLValidationRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ClassifyRequest carries a free-text error returned by the remote analysis service.
type ClassifyRequest struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ClassifyResponse is the category for a classified error plus its display metadata.
type ClassifyResponse struct {
	Category  taxonomy.ErrorCategory `json:"category"`
	ErrorInfo taxonomy.ErrorInfo     `json:"errorInfo"`
}

// CatalogResponse lists the display metadata of every category.
type CatalogResponse struct {
	Errors []taxonomy.ErrorInfo `json:"errors"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string                  `json:"error"`
	Message   string                  `json:"message,omitempty"`
	ErrorType *taxonomy.ErrorCategory `json:"errorType,omitempty"`
}
