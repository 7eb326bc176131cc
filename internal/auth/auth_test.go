package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/isaacjstriker/blockdrop/internal/auth"
	"github.com/isaacjstriker/blockdrop/internal/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, auth.CheckPassword("hunter22", hash))
	assert.False(t, auth.CheckPassword("hunter23", hash))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, auth.ValidateUsername("block_dropper1"))
	assert.Error(t, auth.ValidateUsername("ab"))
	assert.Error(t, auth.ValidateUsername(strings.Repeat("a", 21)))
	assert.Error(t, auth.ValidateUsername("no spaces"))

	assert.NoError(t, auth.ValidateEmail("player@example.com"))
	assert.Error(t, auth.ValidateEmail(""))
	assert.Error(t, auth.ValidateEmail("player@"))

	assert.NoError(t, auth.ValidatePassword("password1"))
	assert.Error(t, auth.ValidatePassword("short1"))
	assert.Error(t, auth.ValidatePassword("onlyletters"))
	assert.Error(t, auth.ValidatePassword("12345678"))
	assert.Error(t, auth.ValidatePassword(strings.Repeat("a1", 40)))
}

func TestPrompterReadsLines(t *testing.T) {
	var out strings.Builder
	p := auth.NewPrompterFrom(strings.NewReader("  ace \nsecret1\nlast"), &out)

	name, err := p.ReadInput("Username: ")
	require.NoError(t, err)
	assert.Equal(t, "ace", name)

	pw, err := p.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret1", pw)

	last, err := p.ReadInput("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", last)

	_, err = p.ReadInput("> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Contains(t, out.String(), "Username: ")
}

func TestSessionManagerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")

	sm := auth.NewSessionManager(path, zap.NewNop())
	assert.Nil(t, sm.Current())
	assert.False(t, sm.IsLoggedIn("http://api"))
	assert.Equal(t, "Not logged in", sm.UserInfo())

	require.NoError(t, sm.SaveSession(auth.Session{Username: "ace", Token: "tok", APIURL: "http://api"}))

	reloaded := auth.NewSessionManager(path, zap.NewNop())
	require.NotNil(t, reloaded.Current())
	assert.Equal(t, "tok", reloaded.Current().Token)
	assert.True(t, reloaded.IsLoggedIn("http://api"))
	assert.False(t, reloaded.IsLoggedIn("http://elsewhere"))
	assert.Contains(t, reloaded.UserInfo(), "ace")

	require.NoError(t, reloaded.ClearSession())
	assert.Nil(t, auth.NewSessionManager(path, zap.NewNop()).Current())
	assert.NoError(t, reloaded.ClearSession())
}

type fakeAPI struct {
	mu         sync.Mutex
	registered map[string]string
}

func (f *fakeAPI) password(username string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pw, ok := f.registered[username]
	return pw, ok
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Email, Password string }
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.registered[req.Username]; ok {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "username or email already exists"})
			return
		}
		f.registered[req.Username] = req.Password
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&req)
		if pw, ok := f.password(req.Username); !ok || pw != req.Password {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid username or password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "token-" + req.Username, "username": req.Username})
	})
	return mux
}

func newCLI(t *testing.T, input string) (*auth.CLIAuth, *leaderboard.Client, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{registered: map[string]string{"ace": "password1"}}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	client := leaderboard.NewClient(srv.URL, nil)
	sm := auth.NewSessionManager(filepath.Join(t.TempDir(), "session"), zap.NewNop())
	prompt := auth.NewPrompterFrom(strings.NewReader(input), io.Discard)
	return auth.NewCLIAuth(client, sm, prompt, io.Discard, srv.URL), client, api
}

func TestCLILogin(t *testing.T) {
	cli, client, _ := newCLI(t, "ace\npassword1\n")

	require.NoError(t, cli.Login(context.Background()))
	assert.True(t, cli.LoggedIn())
	assert.Equal(t, "token-ace", client.Token())
	assert.Equal(t, "ace", cli.Session().Current().Username)
}

func TestCLILoginWrongPassword(t *testing.T) {
	cli, client, _ := newCLI(t, "ace\nwrong123\n")

	err := cli.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid username or password")
	assert.False(t, cli.LoggedIn())
	assert.Empty(t, client.Token())
}

func TestCLIRegisterLogsIn(t *testing.T) {
	cli, client, api := newCLI(t, "newbie\nnewbie@example.com\npassword2\npassword2\n")

	require.NoError(t, cli.Register(context.Background()))
	pw, _ := api.password("newbie")
	assert.Equal(t, "password2", pw)
	assert.True(t, cli.LoggedIn())
	assert.Equal(t, "token-newbie", client.Token())
}

func TestCLIRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad username", "a\n", "at least 3"},
		{"bad email", "newbie\nnot-an-email\n", "invalid email"},
		{"weak password", "newbie\nnewbie@example.com\nshort\n", "at least 8"},
		{"mismatch", "newbie\nnewbie@example.com\npassword2\npassword3\n", "do not match"},
		{"taken", "ace\nace@example.com\npassword2\npassword2\n", "already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, _ := newCLI(t, tt.input)
			err := cli.Register(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.False(t, cli.LoggedIn())
		})
	}
}

func TestCLILogout(t *testing.T) {
	cli, client, _ := newCLI(t, "ace\npassword1\n")
	require.NoError(t, cli.Login(context.Background()))

	require.NoError(t, cli.Logout())
	assert.False(t, cli.LoggedIn())
	assert.Empty(t, client.Token())
}
