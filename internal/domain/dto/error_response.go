package dto

import "time"

// ErrorResponse is the standard JSON error body returned by the API.
type ErrorResponse struct {
	Message      string    `json:"message" example:"account_id is required"`
	ErrorDetails string    `json:"error,omitempty" example:"strconv.ParseFloat: invalid syntax"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so responses can travel through c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse, copying err's text into the details when non-nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
