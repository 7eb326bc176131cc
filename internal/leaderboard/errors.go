package leaderboard

import (
	"errors"
)

var (
	// ErrRejected means the leaderboard refused the caller, e.g. missing
	// or expired credentials.
	ErrRejected = errors.New("submission rejected")
	// ErrInsufficientResources means the caller is out of allowance and
	// must wait before submitting again.
	ErrInsufficientResources = errors.New("insufficient resources")
	// ErrNetwork covers transport failures and server errors
	ErrNetwork = errors.New("network failure")
	// ErrInvalidSubmission means the result failed validation
	ErrInvalidSubmission = errors.New("invalid submission")
)

// UserMessage turns a submission error into text fit for the player
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRejected):
		return "Submission rejected. Please log in and try again."
	case errors.Is(err, ErrInsufficientResources):
		return "You are submitting too often. Please wait a moment and try again."
	case errors.Is(err, ErrInvalidSubmission):
		return "Score could not be submitted: " + err.Error()
	case errors.Is(err, ErrNetwork):
		return "Could not reach the leaderboard. Check your connection and try again."
	default:
		return "Failed to submit score: " + err.Error()
	}
}
