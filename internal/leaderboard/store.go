package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/isaacjstriker/blockdrop/internal/database"
)

// Store submits scores straight into the database on behalf of one
// player. The API server uses one per request; local play uses one for
// the whole session.
type Store struct {
	db     *database.DB
	userID int
	player string
}

// NewStore creates a store for the given player. userID may be zero for
// players without an account.
func NewStore(db *database.DB, userID int, player string) *Store {
	return &Store{db: db, userID: userID, player: player}
}

func (s *Store) Submit(ctx context.Context, sub Submission) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	sub.Username = strings.TrimSpace(sub.Username)
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.db.SaveScore(database.Score{
		UserID:   s.userID,
		Player:   s.player,
		Username: sub.Username,
		Score:    sub.Score,
		Level:    sub.Level,
		Lines:    sub.Lines,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return &Receipt{TransactionID: saved.TransactionID}, nil
}

func (s *Store) FetchTop(ctx context.Context, count int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	scores, err := s.db.TopScores(ClampCount(count))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	entries := make([]Entry, 0, len(scores))
	for _, sc := range scores {
		entries = append(entries, Entry{
			Player:    sc.Player,
			Score:     sc.Score,
			Level:     sc.Level,
			Lines:     sc.Lines,
			Timestamp: sc.SubmittedAt,
			Username:  sc.Username,
		})
	}
	return entries, nil
}

// Total returns the number of submissions on the leaderboard
func (s *Store) Total(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	total, err := s.db.TotalScores()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return total, nil
}
