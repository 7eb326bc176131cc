package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/eiannone/keyboard"
)

// ExitValue is returned when the player leaves a menu without choosing
const ExitValue = "exit"

type MenuItem struct {
	Label string
	Value string
}

type Menu struct {
	Title    string
	Subtitle string
	Items    []MenuItem
	Selected int
	Width    int
	Out      io.Writer
}

func NewMenu(title string, items []MenuItem) *Menu {
	return &Menu{
		Title:    title,
		Subtitle: "Stack the blocks, clear the lines",
		Items:    items,
		Width:    60,
		Out:      os.Stdout,
	}
}

// ClearScreen clears the terminal
func ClearScreen() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	cmd.Run()
}

func (m *Menu) horizontal(left, right string) string {
	return left + strings.Repeat("═", m.Width-2) + right
}

func centerText(text string, width int) string {
	inner := width - 4
	n := utf8.RuneCountInString(text)
	if n >= inner {
		return string([]rune(text)[:inner])
	}
	padding := (inner - n) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", inner-n-padding)
}

const banner = `
 ____  _     ___   ____ _  __  ____  ____   ___  ____
| __ )| |   / _ \ / ___| |/ / |  _ \|  _ \ / _ \|  _ \
|  _ \| |  | | | | |   | ' /  | | | | |_) | | | | |_) |
| |_) | |__| |_| | |___| . \  | |_| |  _ <| |_| |  __/
|____/|_____\___/ \____|_|\_\ |____/|_| \_\\___/|_|
`

// Render draws the menu
func (m *Menu) Render(w io.Writer) {
	fmt.Fprint(w, banner)
	fmt.Fprintln(w)

	if m.Subtitle != "" {
		fmt.Fprintln(w, centerText(m.Subtitle, m.Width))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, m.horizontal("╔", "╗"))
	fmt.Fprintf(w, "║ %s ║\n", centerText(m.Title, m.Width))
	fmt.Fprintln(w, m.horizontal("╠", "╣"))

	for i, item := range m.Items {
		prefix := "  "
		if i == m.Selected {
			prefix = "► "
		}
		text := centerText(prefix+item.Label, m.Width)

		if i == m.Selected {
			fmt.Fprintf(w, "║ \033[7m%s\033[0m ║\n", text)
		} else {
			fmt.Fprintf(w, "║ %s ║\n", text)
		}
	}

	fmt.Fprintln(w, m.horizontal("╚", "╝"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use ↑/↓ arrows to navigate, Enter to select, 'q' to quit")
}

func (m *Menu) moveUp() {
	if m.Selected > 0 {
		m.Selected--
	} else {
		m.Selected = len(m.Items) - 1 // wrap to bottom
	}
}

func (m *Menu) moveDown() {
	if m.Selected < len(m.Items)-1 {
		m.Selected++
	} else {
		m.Selected = 0
	}
}

// HandleKey applies one key press. It returns the chosen value and true
// once the player selects an item or leaves the menu.
func (m *Menu) HandleKey(char rune, key keyboard.Key) (string, bool) {
	switch key {
	case keyboard.KeyArrowUp:
		m.moveUp()
		return "", false
	case keyboard.KeyArrowDown:
		m.moveDown()
		return "", false
	case keyboard.KeyEnter:
		if len(m.Items) == 0 {
			return ExitValue, true
		}
		return m.Items[m.Selected].Value, true
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return ExitValue, true
	}

	switch char {
	case 'q', 'Q':
		return ExitValue, true
	case 'w', 'W', 'k':
		m.moveUp()
	case 's', 'S', 'j':
		m.moveDown()
	}
	return "", false
}

// Show displays the menu and blocks until the player picks an item
func (m *Menu) Show() string {
	if err := keyboard.Open(); err != nil {
		fmt.Fprintf(m.Out, "Failed to open keyboard: %v\n", err)
		return ""
	}
	defer keyboard.Close()

	for {
		ClearScreen()
		m.Render(m.Out)

		char, key, err := keyboard.GetKey()
		if err != nil {
			fmt.Fprintf(m.Out, "Error reading key: %v\n", err)
			return ""
		}

		if value, done := m.HandleKey(char, key); done {
			return value
		}
	}
}

// Pause waits for the player to press Enter
func Pause(out io.Writer, in io.Reader) {
	fmt.Fprintln(out, "Press Enter to continue...")
	fmt.Fscanln(in)
}
