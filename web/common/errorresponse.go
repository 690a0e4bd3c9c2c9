package common

type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

func NewFieldErrorResponse(message string, fields map[string]string) *ErrorResponse {
	return &ErrorResponse{Message: message, Fields: fields}
}
