package model

import "github.com/golang-jwt/jwt/v5"

// Token roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Claims are JWT claims for admin and user-scoped tokens
type Claims struct {
	Role    string `json:"role"`
	UserID  int64  `json:"userId,omitempty"` // Only for user tokens
	AdminID string `json:"adminId,omitempty"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}
