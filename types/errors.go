/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "fmt"

// Error codes shared by the JSON API and the MCP server
const (
	CodeValidationFailed   = "validation_failed"
	CodeUnknownMethodology = "unknown_methodology"
	CodeBadRequest         = "bad_request"
	CodeNotFound           = "not_found"
	CodeInternal           = "internal"
)

// APIError provides structured error information for API and MCP responses
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAPIError creates a new structured API error
func NewAPIError(code string, message string, details map[string]interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewValidationError wraps per-field messages in an APIError
func NewValidationError(methodology string, fields map[string]string) *APIError {
	return NewAPIError(CodeValidationFailed, "one or more fields are invalid", map[string]interface{}{
		"methodology": methodology,
		"fields":      fields,
	})
}
