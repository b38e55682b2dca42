package models

import (
	"time"
)

// User represents a row of the users table
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password"` // Hidden from JSON responses
	UserUniqueID string    `json:"user_unique_id" db:"user_unique_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
