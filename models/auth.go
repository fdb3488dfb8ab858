package models

import "time"

// TokenRequest is the body of an admin token request
type TokenRequest struct {
	APIKey string `json:"apiKey"`
}

// TokenResponse is returned when an admin token is issued
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
