package dto

// ErrorResponse is the wire shape for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: message,
		Code:  code,
	}
}

// MessageResponse is the wire shape for acknowledgements that carry no data
type MessageResponse struct {
	Message string `json:"message"`
}

// ReceivedResponse acknowledges a webhook delivery
type ReceivedResponse struct {
	Received bool `json:"received"`
}
