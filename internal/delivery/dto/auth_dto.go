package dto

import "time"

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserInfo  `json:"user"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// PermissionsResponse is the permission provider payload: named checks and
// whether they are still loading.
type PermissionsResponse struct {
	User        UserInfo        `json:"user"`
	Permissions map[string]bool `json:"permissions"`
	Loading     bool            `json:"loading"`
}
