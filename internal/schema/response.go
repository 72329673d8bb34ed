package schema

import "time"

// Message is a plain confirmation body.
type Message struct {
	Message string `json:"message"`
}

// Health is the body of GET /health.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// ErrorResponse is the envelope every non-2xx JSON response uses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id,omitempty"`
	Fields    []FieldError `json:"fields,omitempty"`
}

func NewErrorResponse(code, message, requestID string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message, RequestID: requestID}}
}
