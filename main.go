package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/isaacjstriker/blockdrop/internal/config"
	"github.com/isaacjstriker/blockdrop/ui"
)

const usage = `Usage: blockdrop [command]

Commands:
  play          start a game in the terminal (default shows the menu)
  leaderboard   show the top scores [-count n] [-local]
  login         log in to the leaderboard server
  register      create a leaderboard account
  logout        forget the saved login
  serve         run the leaderboard API server [-seed]
  dbcheck       check the database connection
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := "menu"
	var args []string
	if len(os.Args) > 1 {
		cmd, args = os.Args[1], os.Args[2:]
	}

	if err := run(ctx, cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string) error {
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		fmt.Print(usage)
		return nil
	}

	var (
		cfg *config.Config
		err error
	)
	if cmd == "serve" {
		cfg, err = config.LoadServer()
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	switch cmd {
	case "menu":
		return runMenu(ctx, cfg)
	case "play":
		return runPlay(ctx, cfg)
	case "leaderboard":
		return runLeaderboard(ctx, cfg, args)
	case "login", "register", "logout":
		return runAccount(ctx, cfg, cmd)
	case "serve":
		return runServe(ctx, cfg, args)
	case "dbcheck":
		return runDBCheck(cfg)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runMenu(ctx context.Context, cfg *config.Config) error {
	items := []ui.MenuItem{
		{Label: "Play Block Drop", Value: "play"},
		{Label: "Leaderboard", Value: "leaderboard"},
		{Label: "Account", Value: "account"},
		{Label: "Quit", Value: "quit"},
	}

	for {
		var err error
		switch ui.NewMenu(cfg.AppName, items).Show() {
		case "play":
			err = runPlay(ctx, cfg)
		case "leaderboard":
			ui.ClearScreen()
			err = runLeaderboard(ctx, cfg, nil)
		case "account":
			a, aerr := newAccount(cfg)
			if aerr == nil {
				a.cli.ShowAuthMenu(ctx)
				a.close()
				continue
			}
			err = aerr
		default:
			return nil
		}

		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		ui.Pause(os.Stdout, os.Stdin)
	}
}
