package model

import "time"

// User is a chat participant; messages and sentiment records hang off it
type User struct {
	ID        int64     `json:"id" bson:"_id"`
	Username  string    `json:"username" bson:"username"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

// CreateUserRequest is the request body for POST /v1/users
type CreateUserRequest struct {
	Username string `json:"username"`
}

// CreateUserResponse returns the user together with a user-scoped token
type CreateUserResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
