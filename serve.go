package main

import (
	"context"
	"flag"

	"github.com/isaacjstriker/blockdrop/games/blockdrop"
	"github.com/isaacjstriker/blockdrop/internal/api"
	"github.com/isaacjstriker/blockdrop/internal/auth"
	"github.com/isaacjstriker/blockdrop/internal/config"
	"github.com/isaacjstriker/blockdrop/internal/logging"
	"go.uber.org/zap"
)

const demoPassword = "password123"

func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	seed := fs.Bool("seed", false, "add demo players to an empty database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := openLocalDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database ready", zap.String("type", db.Type()))

	if *seed {
		hash, err := auth.HashPassword(demoPassword)
		if err != nil {
			return err
		}
		n, err := db.CreateTestData(hash)
		if err != nil {
			return err
		}
		logger.Info("seeded demo data", zap.Int("users", n))
	}

	rules, err := blockdrop.LoadRules(cfg.RulesScript)
	if err != nil {
		logger.Warn("using default rules", zap.String("script", cfg.RulesScript), zap.Error(err))
	}

	return api.NewAPIServer(db, cfg, logger, rules).Start(ctx)
}
