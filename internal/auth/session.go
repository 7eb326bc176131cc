package auth

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Session is a logged-in leaderboard account
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
	APIURL   string `json:"api_url"`
}

// SessionManager keeps the current session on disk between runs
type SessionManager struct {
	sessionFile string
	current     *Session
}

// NewSessionManager loads any session saved at path. A missing or
// unreadable file just means nobody is logged in.
func NewSessionManager(path string, logger *zap.Logger) *SessionManager {
	sm := &SessionManager{sessionFile: path}
	if err := sm.LoadSession(); err != nil {
		logger.Debug("no previous session loaded", zap.String("path", path), zap.Error(err))
	}
	return sm
}

// SaveSession saves the session to disk
func (sm *SessionManager) SaveSession(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(sm.sessionFile, data, 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	sm.current = &s
	return nil
}

// LoadSession loads a session from disk
func (sm *SessionManager) LoadSession() error {
	data, err := os.ReadFile(sm.sessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.Token == "" {
		return fmt.Errorf("session file has no token")
	}

	sm.current = &session
	return nil
}

func (sm *SessionManager) Current() *Session {
	return sm.current
}

// IsLoggedIn reports whether a session for apiURL is present. Tokens
// issued by one server are useless against another.
func (sm *SessionManager) IsLoggedIn(apiURL string) bool {
	return sm.current != nil && (sm.current.APIURL == "" || sm.current.APIURL == apiURL)
}

// ClearSession forgets the current session
func (sm *SessionManager) ClearSession() error {
	sm.current = nil

	if err := os.Remove(sm.sessionFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// UserInfo describes the current session for display
func (sm *SessionManager) UserInfo() string {
	if sm.current == nil {
		return "Not logged in"
	}
	return fmt.Sprintf("Logged in as: %s", sm.current.Username)
}
