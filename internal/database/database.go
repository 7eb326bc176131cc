package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique column already holds the value
var ErrDuplicate = errors.New("already exists")

// classify maps driver constraint errors onto the package's sentinels
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

type DB struct {
	conn   *sql.DB
	dbType string // "postgres" or "sqlite3"
}

type User struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

// Score is one submitted result on the leaderboard
type Score struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transaction_id"`
	UserID        int       `json:"user_id"`
	Player        string    `json:"player"`
	Username      string    `json:"username"`
	Score         int       `json:"score"`
	Level         int       `json:"level"`
	Lines         int       `json:"lines"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Connect establishes a connection to the database. Postgres URLs use
// lib/pq; sqlite3://<path> opens a local SQLite file.
func Connect(dbURL string) (*DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	// Determine driver from URL prefix
	var driverName, dsn string
	switch {
	case strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://"):
		driverName, dsn = "postgres", dbURL
	case strings.HasPrefix(dbURL, "sqlite3://"):
		driverName, dsn = "sqlite3", strings.TrimPrefix(dbURL, "sqlite3://")
	default:
		return nil, fmt.Errorf("unsupported database type for URL")
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if driverName == "sqlite3" {
		// one connection keeps :memory: databases shared and serializes writers
		conn.SetMaxOpenConns(1)
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, dbType: driverName}, nil
}

// Type returns the driver name in use
func (db *DB) Type() string {
	return db.dbType
}

// CreateTables creates the necessary database tables
func (db *DB) CreateTables() error {
	var queries []string

	if db.dbType == "postgres" {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				username VARCHAR(50) UNIQUE NOT NULL,
				email VARCHAR(100) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				last_login TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS scores (
				id SERIAL PRIMARY KEY,
				transaction_id VARCHAR(36) UNIQUE NOT NULL,
				user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
				player VARCHAR(50) NOT NULL,
				username VARCHAR(20) NOT NULL,
				score INTEGER NOT NULL,
				level INTEGER NOT NULL,
				lines INTEGER NOT NULL,
				submitted_at TIMESTAMP NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_scores_user ON scores(user_id, submitted_at DESC)`,
		}
	} else {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL,
				email TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				last_login DATETIME
			)`,
			`CREATE TABLE IF NOT EXISTS scores (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				transaction_id TEXT UNIQUE NOT NULL,
				user_id INTEGER,
				player TEXT NOT NULL,
				username TEXT NOT NULL,
				score INTEGER NOT NULL,
				level INTEGER NOT NULL,
				lines INTEGER NOT NULL,
				submitted_at DATETIME NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users (id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC)`,
		}
	}

	for _, query := range queries {
		if _, err := db.conn.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL
func (db *DB) rebind(query string) string {
	if db.dbType != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Ping checks the connection is alive
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// QueryRow wrapper for convenience
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(db.rebind(query), args...)
}

// CreateUser creates a new user in the database
func (db *DB) CreateUser(username, email, passwordHash string) (*User, error) {
	now := time.Now().UTC()
	var id int64

	if db.dbType == "postgres" {
		err := db.conn.QueryRow(
			"INSERT INTO users (username, email, password_hash, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
			username, email, passwordHash, now,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", classify(err))
		}
	} else {
		result, err := db.conn.Exec(
			"INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
			username, email, passwordHash, now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", classify(err))
		}
		id, err = result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get user ID: %w", err)
		}
	}

	return &User{
		ID:        int(id),
		Username:  username,
		Email:     email,
		CreatedAt: now,
	}, nil
}

// GetUserByUsername retrieves a user by username
func (db *DB) GetUserByUsername(username string) (*User, string, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, last_login
		FROM users WHERE username = ?
	`

	var user User
	var passwordHash string
	err := db.conn.QueryRow(db.rebind(query), username).Scan(
		&user.ID, &user.Username, &user.Email, &passwordHash,
		&user.CreatedAt, &user.LastLogin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("failed to get user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	return &user, passwordHash, nil
}

// TouchLogin records a successful login
func (db *DB) TouchLogin(userID int) error {
	_, err := db.conn.Exec(db.rebind("UPDATE users SET last_login = ? WHERE id = ?"), time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// SaveScore stores a submitted result and returns it with its
// transaction id and submission time filled in.
func (db *DB) SaveScore(s Score) (*Score, error) {
	s.TransactionID = uuid.NewString()
	s.SubmittedAt = time.Now().UTC()

	query := `
        INSERT INTO scores (transaction_id, user_id, player, username, score, level, lines, submitted_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	var userID interface{}
	if s.UserID != 0 {
		userID = s.UserID
	}

	_, err := db.conn.Exec(db.rebind(query),
		s.TransactionID, userID, s.Player, s.Username, s.Score, s.Level, s.Lines, s.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save score: %w", err)
	}

	return &s, nil
}

// TopScores returns the best results, highest score first. Ties go to
// the earlier submission.
func (db *DB) TopScores(limit int) ([]Score, error) {
	query := `
        SELECT id, transaction_id, COALESCE(user_id, 0), player, username, score, level, lines, submitted_at
        FROM scores
        ORDER BY score DESC, submitted_at ASC, id ASC
        LIMIT ?
    `

	rows, err := db.conn.Query(db.rebind(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top scores: %w", err)
	}
	defer rows.Close()

	entries := []Score{}
	for rows.Next() {
		var s Score
		if err := rows.Scan(
			&s.ID, &s.TransactionID, &s.UserID, &s.Player, &s.Username,
			&s.Score, &s.Level, &s.Lines, &s.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		entries = append(entries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}

	return entries, nil
}

// TotalScores returns how many results have been submitted
func (db *DB) TotalScores() (int, error) {
	var total int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM scores").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count scores: %w", err)
	}
	return total, nil
}

// LastSubmission returns when the user last submitted a score. The
// boolean is false if the user never has.
func (db *DB) LastSubmission(userID int) (time.Time, bool, error) {
	query := `
        SELECT submitted_at FROM scores
        WHERE user_id = ?
        ORDER BY submitted_at DESC
        LIMIT 1
    `
	var at time.Time
	err := db.conn.QueryRow(db.rebind(query), userID).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get last submission: %w", err)
	}
	return at, true, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}
