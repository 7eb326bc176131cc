package api

import (
	"net/http"
	"strconv"

	"github.com/isaacjstriker/blockdrop/internal/leaderboard"
	"go.uber.org/zap"
)

// handleGetLeaderboard returns the top results, highest first
func (s *APIServer) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil {
		count = leaderboard.DefaultTopCount
	}

	entries, err := leaderboard.NewStore(s.db, 0, "").FetchTop(r.Context(), count)
	if err != nil {
		s.logger.Error("failed to fetch leaderboard", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to fetch leaderboard"})
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *APIServer) handleGetTotal(w http.ResponseWriter, r *http.Request) {
	total, err := leaderboard.NewStore(s.db, 0, "").Total(r.Context())
	if err != nil {
		s.logger.Error("failed to count scores", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to count scores"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"total": total})
}
