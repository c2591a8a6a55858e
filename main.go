// underground-miner is a terminal dig-and-destroy game: pick a level, break
// rock with your tools before the cave's stability runs out, and uncover
// every buried treasure.
//
// Usage:
//
//	underground-miner [-area "The Caves"] [-seed 42] [-log miner.log]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"underground-miner/assets"
	"underground-miner/internal/expedition"
	"underground-miner/internal/game"
)

func main() {
	defaults := expedition.DefaultConfig()
	levels := flag.String("levels", "", "Path to a levels.json overriding the built-in levels")
	treasures := flag.String("treasures", "", "Path to a treasures.json overriding the built-in treasures")
	area := flag.String("area", assets.DefaultArea, "Area shown first in the level picker")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	count := flag.Int("treasures-count", defaults.TreasureCount, "Treasures buried per expedition")
	logPath := flag.String("log", "", "Write debug logs to this file")
	flag.Parse()

	cat, err := assets.Load(*levels, *treasures)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if _, ok := cat.Levels[*area]; !ok {
		msg := fmt.Sprintf("error: unknown area %q", *area)
		if s, ok := cat.Levels.Suggest(*area); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(2)
	}

	// The screen owns stdout, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := defaults
	cfg.Seed = *seed
	cfg.TreasureCount = *count

	g, err := game.New(game.Options{Catalog: cat, Config: cfg, Logger: logger, Area: *area})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	g.Run()
}
