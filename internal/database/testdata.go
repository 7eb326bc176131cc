package database

import (
	"fmt"
)

// CreateTestData fills an empty database with demo players and scores
// so a fresh install has a leaderboard to show.
func (db *DB) CreateTestData(passwordHash string) (int, error) {
	var userCount int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing users: %w", err)
	}

	if userCount > 0 {
		return 0, nil // Data already exists
	}

	testUsers := []struct {
		username string
		email    string
		display  string
		results  [][3]int // score, level, lines
	}{
		{"speedster", "speedster@example.com", "Speedster", [][3]int{{4200, 4, 31}, {1800, 2, 14}}},
		{"stacker", "stacker@example.com", "TheStacker", [][3]int{{9600, 6, 52}}},
		{"linebreaker", "lines@example.com", "LineBreaker", [][3]int{{300, 1, 3}, {2500, 3, 22}}},
		{"dropmaster", "drop@example.com", "DropMaster", [][3]int{{12800, 8, 71}}},
	}

	created := 0
	for _, tu := range testUsers {
		user, err := db.CreateUser(tu.username, tu.email, passwordHash)
		if err != nil {
			return created, fmt.Errorf("failed to create test user %s: %w", tu.username, err)
		}

		for _, r := range tu.results {
			_, err := db.SaveScore(Score{
				UserID:   user.ID,
				Player:   user.Username,
				Username: tu.display,
				Score:    r[0],
				Level:    r[1],
				Lines:    r[2],
			})
			if err != nil {
				return created, fmt.Errorf("failed to create test score for %s: %w", tu.username, err)
			}
			created++
		}
	}

	return created, nil
}
