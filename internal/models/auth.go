package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds the credentials the mobile client submits.
type LoginRequest struct {
	SchoolID  string `json:"school_id" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the gateway token and the signed-in user.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        User      `json:"user"`
	IssuedAt    time.Time `json:"issued_at"`
}

// Session binds a gateway session to the backend bearer token it forwards.
type Session struct {
	ID            string    `json:"id"`
	UpstreamToken string    `json:"upstream_token"`
	User          User      `json:"user"`
	IssuedAt      time.Time `json:"issued_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// SessionClaims represents the JWT payload of gateway access tokens.
type SessionClaims struct {
	SessionID string   `json:"sid"`
	UserID    int64    `json:"user_id"`
	Role      UserRole `json:"role"`
	FullName  string   `json:"full_name"`
	jwt.RegisteredClaims
}
