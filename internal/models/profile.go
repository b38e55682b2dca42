package models

import "time"

// Profile represents a row of the profiles table
type Profile struct {
	ID             int64     `json:"id" db:"id"`
	UserUniqueID   string    `json:"user_unique_id" db:"user_unique_id"`
	Name           *string   `json:"name" db:"name"`
	Email          *string   `json:"email" db:"email"`
	Phone          *string   `json:"phone" db:"phone"`
	Address        *string   `json:"address" db:"address"`
	Bio            *string   `json:"bio" db:"bio"`
	ProfilePicture *string   `json:"profile_picture" db:"profile_picture"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Appointment represents a row of the appointments table
type Appointment struct {
	ID          int64     `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Date        time.Time `json:"date" db:"date"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
