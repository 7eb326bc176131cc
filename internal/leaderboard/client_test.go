package leaderboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/isaacjstriker/blockdrop/internal/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func TestClientSubmitSendsTokenAndBody(t *testing.T) {
	var got leaderboard.Submission
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/scores", r.URL.Path)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		jsonHandler(http.StatusCreated, leaderboard.Receipt{TransactionID: "tx-1"})(w, r)
	}))
	defer srv.Close()

	client := leaderboard.NewClient(srv.URL+"/", nil)
	client.SetToken("secret-token")

	receipt, err := client.Submit(context.Background(), leaderboard.NewSubmission(900, 1, 7, "ace"))
	require.NoError(t, err)
	assert.Equal(t, "tx-1", receipt.TransactionID)
	assert.Equal(t, "Bearer secret-token", auth)
	assert.Equal(t, leaderboard.Submission{Score: 900, Level: 1, Lines: 7, Username: "ace"}, got)
}

func TestClientSubmitValidatesLocally(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := leaderboard.NewClient(srv.URL, nil)
	_, err := client.Submit(context.Background(), leaderboard.NewSubmission(100, 1, 1, ""))
	assert.ErrorIs(t, err, leaderboard.ErrInvalidSubmission)
	assert.False(t, called)
}

func TestClientErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, leaderboard.ErrRejected},
		{http.StatusForbidden, leaderboard.ErrRejected},
		{http.StatusTooManyRequests, leaderboard.ErrInsufficientResources},
		{http.StatusPaymentRequired, leaderboard.ErrInsufficientResources},
		{http.StatusBadRequest, leaderboard.ErrInvalidSubmission},
		{http.StatusInternalServerError, leaderboard.ErrNetwork},
		{http.StatusBadGateway, leaderboard.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(jsonHandler(tt.status, map[string]string{"error": "nope"}))
			defer srv.Close()

			client := leaderboard.NewClient(srv.URL, nil)
			_, err := client.Submit(context.Background(), leaderboard.NewSubmission(100, 1, 1, "ace"))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, leaderboard.IsStatus(err, tt.status))
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestClientUnclassifiedStatus(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusNotFound, map[string]string{"error": "missing"}))
	defer srv.Close()

	_, err := leaderboard.NewClient(srv.URL, nil).FetchTop(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, leaderboard.IsStatus(err, http.StatusNotFound))
	assert.NotErrorIs(t, err, leaderboard.ErrNetwork)
}

func TestClientTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := leaderboard.NewClient(url, &http.Client{Timeout: time.Second})
	_, err := client.FetchTop(context.Background(), 5)
	assert.ErrorIs(t, err, leaderboard.ErrNetwork)
}

func TestClientFetchTopAndTotal(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("count"))
		jsonHandler(http.StatusOK, []leaderboard.Entry{
			{Player: "p1", Score: 5000, Level: 3, Lines: 25, Timestamp: now, Username: "ace"},
		})(w, r)
	})
	mux.HandleFunc("/api/scores/total", jsonHandler(http.StatusOK, map[string]int{"total": 42}))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := leaderboard.NewClient(srv.URL, nil)

	entries, err := client.FetchTop(context.Background(), 500)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ace", entries[0].Username)
	assert.True(t, now.Equal(entries[0].Timestamp))

	total, err := client.Total(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, total)
}

func TestClientLoginKeepsToken(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, map[string]string{"token": "jwt", "username": "ace"}))
	defer srv.Close()

	client := leaderboard.NewClient(srv.URL, nil)
	token, err := client.Login(context.Background(), "ace", "password1")
	require.NoError(t, err)
	assert.Equal(t, "jwt", token)
	assert.Equal(t, "jwt", client.Token())
}

func TestClientRegisterConflict(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusConflict, map[string]string{"error": "username or email already exists"}))
	defer srv.Close()

	err := leaderboard.NewClient(srv.URL, nil).Register(context.Background(), "ace", "ace@example.com", "password1")
	require.Error(t, err)
	assert.True(t, leaderboard.IsStatus(err, http.StatusConflict))
	assert.Contains(t, err.Error(), "already exists")
}
