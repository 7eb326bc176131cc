package api

import (
	"net/http"

	"github.com/isaacjstriker/blockdrop/internal/auth"
	"go.uber.org/zap"
)

// LoginRequest defines the shape of the login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse defines the shape of the successful login response
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// handleLogin checks credentials and issues a JWT
func (s *APIServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	user, passwordHash, err := s.db.GetUserByUsername(req.Username)
	if err != nil || !auth.CheckPassword(req.Password, passwordHash) {
		writeJSON(w, http.StatusUnauthorized, apiError{Error: "invalid username or password"})
		return
	}

	token, err := createJWT(user.ID, user.Username, s.config.JWTSecret, s.now())
	if err != nil {
		s.logger.Error("failed to create token", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to create token"})
		return
	}

	if err := s.db.TouchLogin(user.ID); err != nil {
		s.logger.Warn("failed to record login", zap.Int("user_id", user.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:    token,
		Username: user.Username,
	})
}
