package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/isaacjstriker/blockdrop/internal/leaderboard"
	"github.com/isaacjstriker/blockdrop/ui"
)

// CLIAuth handles leaderboard accounts from the terminal
type CLIAuth struct {
	client  *leaderboard.Client
	session *SessionManager
	prompt  *Prompter
	out     io.Writer
	apiURL  string
}

// NewCLIAuth creates a CLI authentication handler. If a saved session
// matches apiURL its token is handed to the client.
func NewCLIAuth(client *leaderboard.Client, session *SessionManager, prompt *Prompter, out io.Writer, apiURL string) *CLIAuth {
	auth := &CLIAuth{
		client:  client,
		session: session,
		prompt:  prompt,
		out:     out,
		apiURL:  apiURL,
	}
	if session.IsLoggedIn(apiURL) {
		client.SetToken(session.Current().Token)
	}
	return auth
}

func (auth *CLIAuth) Session() *SessionManager {
	return auth.session
}

// LoggedIn reports whether scores will be submitted under an account
func (auth *CLIAuth) LoggedIn() bool {
	return auth.session.IsLoggedIn(auth.apiURL)
}

// Login asks for credentials and stores the issued token
func (auth *CLIAuth) Login(ctx context.Context) error {
	fmt.Fprintln(auth.out, "\nLogin to Your Account")
	fmt.Fprintln(auth.out, "=====================")

	username, err := auth.prompt.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("error reading username: %w", err)
	}
	password, err := auth.prompt.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}

	return auth.login(ctx, username, password)
}

func (auth *CLIAuth) login(ctx context.Context, username, password string) error {
	token, err := auth.client.Login(ctx, username, password)
	if err != nil {
		if leaderboard.IsStatus(err, http.StatusUnauthorized) {
			return fmt.Errorf("invalid username or password")
		}
		return err
	}

	if err := auth.session.SaveSession(Session{Username: username, Token: token, APIURL: auth.apiURL}); err != nil {
		return err
	}

	fmt.Fprintf(auth.out, "Welcome back, %s!\n", username)
	return nil
}

// Register creates an account and logs into it
func (auth *CLIAuth) Register(ctx context.Context) error {
	fmt.Fprintln(auth.out, "\nCreate New Account")
	fmt.Fprintln(auth.out, "==================")

	username, err := auth.prompt.ReadInput("Username (3-20 characters): ")
	if err != nil {
		return fmt.Errorf("error reading username: %w", err)
	}
	if err := ValidateUsername(username); err != nil {
		return err
	}

	email, err := auth.prompt.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("error reading email: %w", err)
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}

	password, err := auth.prompt.ReadPassword("Password (8+ characters): ")
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	confirm, err := auth.prompt.ReadPassword("Confirm Password: ")
	if err != nil {
		return fmt.Errorf("error reading confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := auth.client.Register(ctx, username, email, password); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	fmt.Fprintln(auth.out, "Account created successfully!")

	return auth.login(ctx, username, password)
}

// Logout forgets the saved session
func (auth *CLIAuth) Logout() error {
	var username string
	if s := auth.session.Current(); s != nil {
		username = s.Username
	}

	if err := auth.session.ClearSession(); err != nil {
		return err
	}
	auth.client.SetToken("")

	if username != "" {
		fmt.Fprintf(auth.out, "Goodbye, %s! You have been logged out.\n", username)
	} else {
		fmt.Fprintln(auth.out, "You have been logged out.")
	}
	return nil
}

// ShowAuthMenu displays the account menu until the player backs out
func (auth *CLIAuth) ShowAuthMenu(ctx context.Context) {
	for {
		var items []ui.MenuItem
		if auth.LoggedIn() {
			items = []ui.MenuItem{
				{Label: auth.session.UserInfo(), Value: "info"},
				{Label: "Switch Account", Value: "switch"},
				{Label: "Logout", Value: "logout"},
				{Label: "Back", Value: "back"},
			}
		} else {
			items = []ui.MenuItem{
				{Label: "Login", Value: "login"},
				{Label: "Register New Account", Value: "register"},
				{Label: "Back", Value: "back"},
			}
		}

		var err error
		switch ui.NewMenu("Account", items).Show() {
		case "login":
			err = auth.Login(ctx)
		case "register":
			err = auth.Register(ctx)
		case "switch":
			if err = auth.Logout(); err == nil {
				err = auth.Login(ctx)
			}
		case "logout":
			err = auth.Logout()
		case "info":
			fmt.Fprintf(auth.out, "\n%s\n", auth.session.UserInfo())
		default:
			return
		}

		if err != nil {
			fmt.Fprintf(auth.out, "Error: %v\n", err)
		}
		ui.Pause(auth.out, auth.prompt.in)
	}
}
