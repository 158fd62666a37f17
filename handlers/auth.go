package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"todo-service/common"
	"todo-service/models"
	"todo-service/services"

	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
)

// AuthHandler handles the unauthenticated endpoints: registration and login.
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /register - create a new user account
func (h *AuthHandler) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, "error", "Invalid request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid JSON in request body"))
		return
	}

	logRequest(ctx, "info", "Registering user", zap.String("email", req.Email))

	if err := h.auth.Register(ctx, req.Name, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			logRequest(ctx, "error", "Missing required fields", zap.String("email", req.Email))
			writeJSON(w, http.StatusBadRequest, errs.NewValidationError("All fields required"))
		case errors.Is(err, common.ErrConflict):
			logRequest(ctx, "info", "Duplicate email", zap.String("email", req.Email))
			writeJSON(w, http.StatusBadRequest, errs.NewValidationError("User already exists"))
		default:
			logRequest(ctx, "error", "Failed to register user", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Server error"))
		}
		return
	}

	logRequest(ctx, "info", "User registered successfully", zap.String("email", req.Email))
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login handles POST /login - verify credentials and issue a bearer token
func (h *AuthHandler) Login(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, "error", "Invalid request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid JSON in request body"))
		return
	}

	logRequest(ctx, "info", "Login attempt", zap.String("email", req.Email))

	token, name, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			logRequest(ctx, "error", "Missing credentials", zap.String("email", req.Email))
			writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Email and password required"))
		case errors.Is(err, common.ErrNotFound):
			logRequest(ctx, "info", "User not found", zap.String("email", req.Email))
			writeJSON(w, http.StatusNotFound, errs.NewNotFoundError("User not found"))
		case errors.Is(err, common.ErrAuthentication):
			logRequest(ctx, "info", "Invalid password", zap.String("email", req.Email))
			writeJSON(w, http.StatusUnauthorized, errs.NewAuthenticationError("Invalid credentials"))
		default:
			logRequest(ctx, "error", "Failed to log in user", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Server error"))
		}
		return
	}

	logRequest(ctx, "info", "Login successful", zap.String("email", req.Email))
	writeJSON(w, http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		Name:    name,
	})
}
