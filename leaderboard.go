package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/isaacjstriker/blockdrop/internal/config"
	"github.com/isaacjstriker/blockdrop/internal/leaderboard"
	"go.uber.org/zap"
)

type leaderboardSource interface {
	leaderboard.ScoreSubmitter
	Total(ctx context.Context) (int, error)
}

func runLeaderboard(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("leaderboard", flag.ContinueOnError)
	count := fs.Int("count", leaderboard.DefaultTopCount, "number of entries to show")
	local := fs.Bool("local", false, "read the local database instead of the server")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var source leaderboardSource = leaderboard.NewClient(cfg.APIURL, nil)
	if *local {
		db, err := openLocalDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		source = leaderboard.NewStore(db, 0, "local")
	}

	// the leaderboard is informational, so failures show as empty
	entries := leaderboard.TopOrEmpty(ctx, source, *count, zap.NewNop())
	printLeaderboard(os.Stdout, entries)

	if total, err := source.Total(ctx); err == nil {
		fmt.Printf("\n%d scores submitted in total\n", total)
	}
	return nil
}

func printLeaderboard(w io.Writer, entries []leaderboard.Entry) {
	fmt.Fprintln(w, "LEADERBOARD")
	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSCORE\tLEVEL\tLINES\tDATE")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\n",
			i+1, e.Username, e.Score, e.Level, e.Lines, e.Timestamp.Local().Format("2006-01-02"))
	}
	tw.Flush()
}
