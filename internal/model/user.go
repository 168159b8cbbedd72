package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role controls a user's authorization scope.
type Role string

// Status is informational; it does not gate login.
type Status string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"

	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// DefaultProfilePhoto is the placeholder reference assigned at creation.
const DefaultProfilePhoto = "/default-avatar.jpg"

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User is a directory record. The bson tags mirror the persisted document
// layout; the password digest is never serialized outward.
type User struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string        `json:"name" bson:"name"`
	Email        string        `json:"email" bson:"email"`
	PasswordHash string        `json:"-" bson:"password"`
	Role         Role          `json:"role" bson:"role"`
	Status       Status        `json:"status" bson:"status"`
	ProfilePhoto string        `json:"profilePhoto" bson:"profilePhoto"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// CreateUserRequest carries registration and admin-create input. Field
// order matters: validation reports the first failing field in this order.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,simple_email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
	Status   string `json:"status" validate:"required,oneof=active inactive"`
}

// Normalize trims the name and lowercases email, role and status before
// validation, matching how records are stored.
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(r.Role)
	r.Status = strings.ToLower(r.Status)
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries a partial update. An empty string means
// "leave the stored value unchanged", never "clear the field".
type UpdateUserRequest struct {
	Name   string `json:"name" validate:"omitempty,min=2"`
	Email  string `json:"email" validate:"omitempty,simple_email"`
	Role   string `json:"role" validate:"omitempty,oneof=admin user"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Normalize applies the same canonicalization as CreateUserRequest to the
// fields that were provided.
func (r *UpdateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(r.Role)
	r.Status = strings.ToLower(r.Status)
}

// TokenResponse is returned by the register and login endpoints.
type TokenResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
}

// UserResponse wraps a single record.
type UserResponse struct {
	User *User `json:"user"`
}

// UserListResponse is one page of records plus the total count for
// client-side pagination math.
type UserListResponse struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
}
