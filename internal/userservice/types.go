package userservice

import (
	"database/sql"
	"time"
)

type UserService struct {
	m *UserModel
}

type UserModel struct {
	db *sql.DB
}

type User struct {
	ID                int        `json:"user_id"`
	Email             string     `json:"email"`
	Username          string     `json:"username"`
	Role              int        `json:"role"`
	IsEmailVerified   bool       `json:"is_email_verified"`
	IsActivated       bool       `json:"is_activated"`
	Firstname         string     `json:"firstname,omitempty"`
	Lastname          string     `json:"lastname,omitempty"`
	Password          Password   `json:"-"`
	PictureURI        string     `json:"picture_uri,omitempty"`
	AccountCreationTs time.Time  `json:"account_creation_ts"`
	LastLoginTs       *time.Time `json:"last_login_ts,omitempty"`
}

// UserPreview is the reduced projection used by bounded listings.
type UserPreview struct {
	ID         int    `json:"user_id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	PictureURI string `json:"picture_uri,omitempty"`
	Role       int    `json:"role"`
}

type Password struct {
	hash []byte
}
