package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	hasLetter       = regexp.MustCompile(`[a-zA-Z]`)
	hasNumber       = regexp.MustCompile(`[0-9]`)
)

// Prompter reads answers from the player. Passwords are read without
// echo when the input is a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// NewPrompter prompts on the process's terminal
func NewPrompter() *Prompter {
	fd := int(os.Stdin.Fd())
	return &Prompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		fd:  fd,
		tty: term.IsTerminal(fd),
	}
}

// NewPrompterFrom prompts on arbitrary streams, e.g. in tests
func NewPrompterFrom(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ReadInput reads a line of input from the user
func (p *Prompter) ReadInput(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	input, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadPassword reads a password without echoing it to the terminal
func (p *Prompter) ReadPassword(prompt string) (string, error) {
	if !p.tty {
		return p.ReadInput(prompt)
	}

	fmt.Fprint(p.out, prompt)
	password, err := term.ReadPassword(p.fd)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(p.out)
	return string(password), nil
}

func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidateUsername checks an account name. Account names double as
// leaderboard display names, so they share its length limit.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(username) > 20 {
		return fmt.Errorf("username must be no more than 20 characters long")
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, and underscores")
	}
	return nil
}

func ValidateEmail(email string) error {
	if len(email) == 0 {
		return fmt.Errorf("email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword validates a password
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 72 {
		// bcrypt ignores anything past 72 bytes
		return fmt.Errorf("password must be no more than 72 characters long")
	}
	if !hasLetter.MatchString(password) {
		return fmt.Errorf("password must contain at least one letter")
	}
	if !hasNumber.MatchString(password) {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}
