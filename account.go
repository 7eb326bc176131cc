package main

import (
	"context"
	"fmt"
	"os"

	"github.com/isaacjstriker/blockdrop/internal/auth"
	"github.com/isaacjstriker/blockdrop/internal/config"
	"github.com/isaacjstriker/blockdrop/internal/leaderboard"
	"github.com/isaacjstriker/blockdrop/internal/logging"
	"go.uber.org/zap"
)

// account bundles what the client commands need to talk to the
// leaderboard server as the saved user.
type account struct {
	cli    *auth.CLIAuth
	client *leaderboard.Client
	prompt *auth.Prompter
	logger *zap.Logger
}

func newAccount(cfg *config.Config) (*account, error) {
	logger, err := logging.NewFile(cfg.Debug, logFile)
	if err != nil {
		return nil, err
	}

	client := leaderboard.NewClient(cfg.APIURL, nil)
	prompt := auth.NewPrompter()
	session := auth.NewSessionManager(cfg.SessionFile, logger)

	return &account{
		cli:    auth.NewCLIAuth(client, session, prompt, os.Stdout, cfg.APIURL),
		client: client,
		prompt: prompt,
		logger: logger,
	}, nil
}

func (a *account) close() {
	a.logger.Sync()
}

func runAccount(ctx context.Context, cfg *config.Config, cmd string) error {
	a, err := newAccount(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	switch cmd {
	case "login":
		err = a.cli.Login(ctx)
	case "register":
		err = a.cli.Register(ctx)
	case "logout":
		err = a.cli.Logout()
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", cmd, err)
	}
	return nil
}
