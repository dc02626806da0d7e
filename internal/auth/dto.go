package auth

import (
	"time"
)

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Username   string `json:"username"   validate:"required"`
	Password   string `json:"password"   validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type SignupResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// UserInfo is the account view the auth service needs; the user
// package adapts its entity to this to avoid a package cycle.
type UserInfo struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
