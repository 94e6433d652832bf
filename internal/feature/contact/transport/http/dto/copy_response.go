package dto

// CopyResponse is the copy button state, plus the address after a click.
type CopyResponse struct {
	State string `json:"state"`
	Email string `json:"email,omitempty"`
}

// ErrorResponse is the error body of every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
