// Package api defines shared HTTP response envelopes used by all handlers.
package api

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for simple success acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the JSON body returned after a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}
