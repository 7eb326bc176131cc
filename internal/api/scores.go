package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/isaacjstriker/blockdrop/internal/leaderboard"
	"go.uber.org/zap"
)

// handleSubmitScore records a finished game for the authenticated user.
// Each account may submit once per cooldown period.
func (s *APIServer) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, apiError{Error: "user not found in context"})
		return
	}

	var sub leaderboard.Submission
	if err := readJSON(r, &sub); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}
	if sub.Username == "" {
		sub.Username = user.Username
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	if cooldown := s.config.SubmitCooldown; cooldown > 0 {
		last, found, err := s.db.LastSubmission(user.UserID)
		if err != nil {
			s.logger.Error("failed to check submission cooldown", zap.Int("user_id", user.UserID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to save score"})
			return
		}
		if wait := cooldown - s.now().Sub(last); found && wait > 0 {
			writeJSON(w, http.StatusTooManyRequests, apiError{
				Error: fmt.Sprintf("please wait %ds before submitting again", int(wait.Seconds())+1),
			})
			return
		}
	}

	store := leaderboard.NewStore(s.db, user.UserID, user.Username)
	receipt, err := store.Submit(r.Context(), sub)
	if errors.Is(err, leaderboard.ErrInvalidSubmission) {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("failed to save score", zap.Int("user_id", user.UserID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to save score"})
		return
	}

	s.logger.Info("score submitted",
		zap.String("player", user.Username),
		zap.Int("score", sub.Score),
		zap.String("transaction_id", receipt.TransactionID),
	)
	writeJSON(w, http.StatusCreated, receipt)
}
