package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/isaacjstriker/blockdrop/games/blockdrop"
	"github.com/isaacjstriker/blockdrop/internal/config"
	"github.com/isaacjstriker/blockdrop/internal/database"
	"github.com/isaacjstriker/blockdrop/internal/leaderboard"
	"github.com/isaacjstriker/blockdrop/ui"
	"go.uber.org/zap"
)

const (
	logFile       = "blockdrop.log"
	submitTimeout = 15 * time.Second
)

func runPlay(ctx context.Context, cfg *config.Config) error {
	a, err := newAccount(cfg)
	if err != nil {
		return err
	}
	defer a.close()
	logger := a.logger

	rules, err := blockdrop.LoadRules(cfg.RulesScript)
	if err != nil {
		logger.Warn("using default rules", zap.String("script", cfg.RulesScript), zap.Error(err))
	}
	engine := blockdrop.NewEngine(rules, blockdrop.NewCatalog(rand.NewSource(time.Now().UnixNano())))

	var (
		mu   sync.Mutex
		best *blockdrop.State
	)
	updates := make(chan blockdrop.Snapshot, 1)
	loop := blockdrop.NewLoop(engine,
		blockdrop.WithLogger(logger),
		blockdrop.WithObserver(blockdrop.LatestObserver(updates)),
		blockdrop.WithGameOver(func(s blockdrop.State) {
			mu.Lock()
			defer mu.Unlock()
			if best == nil || s.Score > best.Score {
				best = &s
			}
		}),
	)

	final, err := blockdrop.PlayTerminal(ctx, loop, updates)
	if err != nil {
		return err
	}

	mu.Lock()
	result := final
	if best != nil && best.Score > final.Score {
		result = *best
	}
	mu.Unlock()

	ui.ClearScreen()
	fmt.Printf("Best score: %d | Lines: %d | Level: %d\n\n", result.Score, result.Lines, result.Level)
	if result.Score == 0 {
		return nil
	}
	return offerSubmission(ctx, cfg, a, result)
}

// offerSubmission asks the player for a display name and submits the
// result in the background. Logged-in players submit to the server,
// everyone else to the local database.
func offerSubmission(ctx context.Context, cfg *config.Config, a *account, result blockdrop.State) error {
	answer, err := a.prompt.ReadInput("Submit your score to the leaderboard? [Y/n]: ")
	if err != nil {
		return err
	}
	if strings.HasPrefix(strings.ToLower(answer), "n") {
		return nil
	}

	defaultName := ""
	if a.cli.LoggedIn() {
		defaultName = a.cli.Session().Current().Username
	}
	name, err := a.prompt.ReadInput(fmt.Sprintf("Display name [%s]: ", defaultName))
	if err != nil {
		return err
	}
	if name == "" {
		name = defaultName
	}

	sub := leaderboard.NewSubmission(result.Score, result.Level, result.Lines, name)
	if err := sub.Validate(); err != nil {
		fmt.Println(leaderboard.UserMessage(err))
		return nil
	}

	var submitter leaderboard.ScoreSubmitter = a.client
	if !a.cli.LoggedIn() {
		fmt.Println("Not logged in, saving to the local leaderboard.")
		db, err := openLocalDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		submitter = leaderboard.NewStore(db, 0, "local")
	}

	d := leaderboard.NewDispatcher(submitter, a.logger, submitTimeout)
	d.Submit(ctx, sub)

	fmt.Print("Submitting score")
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	var res leaderboard.Result
wait:
	for {
		select {
		case res = <-d.Results():
			break wait
		case <-ctx.Done():
			fmt.Println()
			return ctx.Err()
		case <-ticker.C:
			fmt.Print(".")
		}
	}
	fmt.Println()

	if res.Err != nil {
		fmt.Println(leaderboard.UserMessage(res.Err))
	} else {
		fmt.Printf("Score saved! Transaction %s\n\n", res.Receipt.TransactionID)
	}

	printLeaderboard(os.Stdout, leaderboard.TopOrEmpty(ctx, submitter, leaderboard.DefaultTopCount, a.logger))
	return nil
}

func openLocalDB(cfg *config.Config) (*database.DB, error) {
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.CreateTables(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
