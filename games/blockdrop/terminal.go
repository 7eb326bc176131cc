package blockdrop

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eiannone/keyboard"
)

// KeyCommand maps a key press to a game command
func KeyCommand(char rune, key keyboard.Key) (Command, bool) {
	switch {
	case char == 'a' || char == 'A' || key == keyboard.KeyArrowLeft:
		return MoveLeft, true
	case char == 'd' || char == 'D' || key == keyboard.KeyArrowRight:
		return MoveRight, true
	case char == 's' || char == 'S' || key == keyboard.KeyArrowDown:
		return SoftDrop, true
	case char == 'w' || char == 'W' || key == keyboard.KeyArrowUp:
		return Rotate, true
	case key == keyboard.KeySpace || char == ' ':
		return HardDrop, true
	case char == 'p' || char == 'P':
		return TogglePause, true
	case char == 'n' || char == 'N':
		return NewGame, true
	}
	return 0, false
}

func isQuitKey(char rune, key keyboard.Key) bool {
	return char == 'q' || char == 'Q' || key == keyboard.KeyEsc || key == keyboard.KeyCtrlC
}

// PlayTerminal runs the loop with keyboard input and redraws the board
// every time a snapshot arrives on updates. It returns the final session
// state when the player quits.
func PlayTerminal(ctx context.Context, loop *Loop, updates <-chan Snapshot) (State, error) {
	if err := keyboard.Open(); err != nil {
		return State{}, fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer keyboard.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go loop.Run(ctx)
	go inputHandler(ctx, cancel, loop)

	color := supportsColor()
	Render(os.Stdout, loop.Snapshot(), color)
	for {
		select {
		case <-ctx.Done():
			return loop.State(), nil
		case snap := <-updates:
			Render(os.Stdout, snap, color)
		}
	}
}

// inputHandler reads keys until the player quits or ctx ends
func inputHandler(ctx context.Context, quit context.CancelFunc, loop *Loop) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			char, key, err := keyboard.GetKey()
			if err != nil {
				time.Sleep(10 * time.Millisecond) // Small delay to prevent busy waiting
				continue
			}

			if isQuitKey(char, key) {
				quit()
				return
			}
			if cmd, ok := KeyCommand(char, key); ok {
				if err := loop.Send(ctx, cmd); err != nil {
					return
				}
			}
		}
	}
}

// Render draws a snapshot as text
func Render(w io.Writer, snap Snapshot, color bool) {
	var b strings.Builder

	b.WriteString("\033[2J\033[H")
	fmt.Fprintf(&b, "BLOCK DROP | Score: %d | Lines: %d | Level: %d\n", snap.Score, snap.Lines, snap.Level)
	b.WriteString("╔" + strings.Repeat("═", BoardWidth*2) + "╗\n")

	for _, row := range snap.Board {
		b.WriteString("║")
		for _, cell := range row {
			b.WriteString(cellText(cell, color))
		}
		b.WriteString("║\n")
	}
	b.WriteString("╚" + strings.Repeat("═", BoardWidth*2) + "╝\n")

	if snap.NextPiece != nil {
		b.WriteString("\nNext Piece:\n")
		for _, row := range snap.NextPiece {
			b.WriteString("  ")
			for _, v := range row {
				if v == 1 {
					b.WriteString(cellText(snap.NextColor, color))
				} else {
					b.WriteString("  ")
				}
			}
			b.WriteString("\n")
		}
	}

	switch {
	case snap.GameOver:
		b.WriteString("\nGAME OVER! N=New Game, Q=Quit\n")
	case snap.Paused:
		b.WriteString("\nPAUSED. P=Resume\n")
	default:
		b.WriteString("\nControls: A/D=Move, S=Down, W=Rotate, Space=Drop, P=Pause, Q=Quit\n")
	}

	io.WriteString(w, b.String())
}

func cellText(c Color, color bool) string {
	if c == "" {
		if color {
			return "  "
		}
		return ".."
	}
	if !color {
		return "##"
	}
	r, g, bl, ok := hexRGB(c)
	if !ok {
		return "##"
	}
	return fmt.Sprintf("\033[48;2;%d;%d;%dm  \033[0m", r, g, bl)
}

// hexRGB splits a #RRGGBB color into its components
func hexRGB(c Color) (int64, int64, int64, bool) {
	s := strings.TrimPrefix(string(c), "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return v >> 16 & 0xFF, v >> 8 & 0xFF, v & 0xFF, true
}

func supportsColor() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
