// Package leaderboard defines the score submission capability the game
// talks to and its implementations: a direct database store, an HTTP
// client for the leaderboard API and an asynchronous dispatcher.
package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	MaxUsernameLength = 20
	DefaultTopCount   = 10
	MaxTopCount       = 100
)

// Submission is a finished game's result offered to the leaderboard
type Submission struct {
	Score    int    `json:"score"`
	Level    int    `json:"level"`
	Lines    int    `json:"lines"`
	Username string `json:"username"`
}

// Receipt confirms an accepted submission
type Receipt struct {
	TransactionID string `json:"transaction_id"`
}

// Entry is one ranked leaderboard result
type Entry struct {
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Lines     int       `json:"lines"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
}

// ScoreSubmitter is everything the game needs from a leaderboard
type ScoreSubmitter interface {
	Submit(ctx context.Context, s Submission) (*Receipt, error)
	FetchTop(ctx context.Context, count int) ([]Entry, error)
}

// NewSubmission builds a submission with a trimmed display name
func NewSubmission(score, level, lines int, username string) Submission {
	return Submission{
		Score:    score,
		Level:    level,
		Lines:    lines,
		Username: strings.TrimSpace(username),
	}
}

// Validate checks the submission's fields are in range
func (s Submission) Validate() error {
	switch {
	case s.Score < 0:
		return fmt.Errorf("%w: score must be non-negative", ErrInvalidSubmission)
	case s.Level < 1:
		return fmt.Errorf("%w: level must be at least 1", ErrInvalidSubmission)
	case s.Lines < 0:
		return fmt.Errorf("%w: lines must be non-negative", ErrInvalidSubmission)
	case strings.TrimSpace(s.Username) == "":
		return fmt.Errorf("%w: username is required", ErrInvalidSubmission)
	case utf8.RuneCountInString(s.Username) > MaxUsernameLength:
		return fmt.Errorf("%w: username must be at most %d characters", ErrInvalidSubmission, MaxUsernameLength)
	}
	return nil
}

// ClampCount keeps a requested leaderboard size within bounds
func ClampCount(count int) int {
	if count <= 0 {
		return DefaultTopCount
	}
	if count > MaxTopCount {
		return MaxTopCount
	}
	return count
}

// TopOrEmpty fetches the leaderboard, logging and swallowing failures
// so callers always get a list to show.
func TopOrEmpty(ctx context.Context, s ScoreSubmitter, count int, logger *zap.Logger) []Entry {
	entries, err := s.FetchTop(ctx, count)
	if err != nil {
		logger.Warn("leaderboard unavailable", zap.Error(err))
		return []Entry{}
	}
	if entries == nil {
		return []Entry{}
	}
	return entries
}
