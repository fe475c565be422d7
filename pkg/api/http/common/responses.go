package common

// IDResponse is returned by operations that create or act on a single object.
type IDResponse struct {
	ID string `json:"id"`
}

// ErrorResponse is the body of any non 2xx response.
type ErrorResponse struct {
	// Error is a human readable message.
	Error string `json:"error"`

	// Code is a machine readable error code (eg. "VALIDATION").
	Code string `json:"code"`
}
