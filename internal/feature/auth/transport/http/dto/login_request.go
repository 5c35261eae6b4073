// Package dto defines data transfer objects for the auth feature's
// HTTP transport layer.
package dto

// LoginRequest is the body of the /api/login endpoint.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=40"`
	Password string `json:"password" binding:"required,max=80"`
}

// RefreshRequest is the body of the /api/refresh and /api/logout
// endpoints.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse is returned by successful login and refresh calls.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
