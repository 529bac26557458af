package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a document in the users collection. The password is stored only as
// a bcrypt hash and never serialized.
type User struct {
	ID           primitive.ObjectID `json:"id"        bson:"_id,omitempty"`
	Username     string             `json:"username"  bson:"username"`
	PasswordHash string             `json:"-"         bson:"password_hash"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
}

// RegisterRequest is the JSON body for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthUser is the public view of a user returned by the auth endpoints.
type AuthUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
