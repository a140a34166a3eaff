// Package dto defines the request/response payloads for the auth endpoints.
package dto

// SignupRequest is the JSON body for POST /signup.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
