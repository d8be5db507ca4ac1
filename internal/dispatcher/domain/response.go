package domain

// Response is the canonical outward reply of the dispatcher, for both
// dispatched messages and rejections. Success implies ErrorMessage is
// null; a failure always carries some error text.
type Response struct {
	Success      bool    `json:"success"`
	ErrorMessage *string `json:"errorMessage"`
	ID           *string `json:"id"`
}

// NewFailureResponse builds a failed Response with the given message.
func NewFailureResponse(message string) *Response {
	return &Response{Success: false, ErrorMessage: &message}
}

// HealthStatus is the reply shape of the health endpoint.
type HealthStatus struct {
	Status string `json:"status"`
}
