package models

import "time"

// ApiResponse is the common success envelope. Errors use ErrorResponse
// and go through the handlers' translation helpers instead.
type ApiResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func OK(message string) ApiResponse {
	return ApiResponse{Success: true, Message: message, Timestamp: time.Now()}
}

func OKWithData(message string, data any) ApiResponse {
	return ApiResponse{Success: true, Message: message, Timestamp: time.Now(), Data: data}
}
