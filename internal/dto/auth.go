package dto

// RegisterRequest represents the request payload for user registration.
// The username travels as "userid".
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"userid" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse represents the response after a successful registration
type RegisterResponse struct {
	Message      string `json:"message"`
	UserUniqueID string `json:"user_unique_id"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the public user fields and a session token
type LoginResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	UserUniqueID string `json:"user_unique_id"`
	Token        string `json:"token"`
}

// MessageResponse is the body of routes that only report success
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
