package api

import (
	"errors"
	"net/http"

	"github.com/isaacjstriker/blockdrop/internal/auth"
	"github.com/isaacjstriker/blockdrop/internal/database"
	"go.uber.org/zap"
)

// RegisterUserRequest defines the shape of the registration request
type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister handles new user registration
func (s *APIServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	for _, err := range []error{
		auth.ValidateUsername(req.Username),
		auth.ValidateEmail(req.Email),
		auth.ValidatePassword(req.Password),
	} {
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
			return
		}
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to hash password"})
		return
	}

	user, err := s.db.CreateUser(req.Username, req.Email, hashedPassword)
	if errors.Is(err, database.ErrDuplicate) {
		writeJSON(w, http.StatusConflict, apiError{Error: "username or email already exists"})
		return
	}
	if err != nil {
		s.logger.Error("error creating user", zap.String("username", req.Username), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to create user"})
		return
	}

	s.logger.Info("user registered", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	writeJSON(w, http.StatusCreated, user)
}
