package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"SCHEDULING_PLATFORM_BACK-END/internal/config"
	"SCHEDULING_PLATFORM_BACK-END/internal/dto"
	"SCHEDULING_PLATFORM_BACK-END/internal/middleware"
	"SCHEDULING_PLATFORM_BACK-END/internal/models"
	"SCHEDULING_PLATFORM_BACK-END/internal/utils"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	db  DB
	jwt *config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(db DB, jwtCfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{db: db, jwt: jwtCfg}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a user account and return its generated user_unique_id
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.RegisterResponse "User registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 409 {object} dto.ErrorResponse "Email or username already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	userUniqueID, err := h.register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{
		Message:      "User registered successfully!",
		UserUniqueID: userUniqueID,
	})
}

func (h *AuthHandler) register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Username == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return "", ErrMissingFields
	}

	// Check if email or username already exists
	var one int
	err := h.db.QueryRow(ctx,
		"SELECT 1 FROM users WHERE email = $1 OR username = $2 LIMIT 1",
		req.Email, req.Username).Scan(&one)
	if err == nil {
		return "", ErrUserExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("check existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", validationError("Invalid password", "password must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	userUniqueID := uuid.New().String()

	_, err = h.db.Exec(ctx,
		`INSERT INTO users (name, username, email, phone, password, user_unique_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		req.Name, req.Username, req.Email, req.Phone, string(hashedPassword), userUniqueID)
	if isUniqueViolation(err) {
		// lost the race against a concurrent registration
		return "", ErrUserExists
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	return userUniqueID, nil
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Email and password are required"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

func (h *AuthHandler) login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, validationError("Email and password are required", "")
	}

	var user models.User
	err := h.db.QueryRow(ctx,
		`SELECT id, name, username, email, phone, password, user_unique_id
		 FROM users WHERE email = $1`,
		req.Email).Scan(&user.ID, &user.Name, &user.Username, &user.Email,
		&user.Phone, &user.PasswordHash, &user.UserUniqueID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(user.UserUniqueID, user.Email, h.jwt)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &dto.LoginResponse{
		ID:           user.ID,
		Name:         user.Name,
		Username:     user.Username,
		Email:        user.Email,
		Phone:        user.Phone,
		UserUniqueID: user.UserUniqueID,
		Token:        token,
	}, nil
}
