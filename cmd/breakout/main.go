// breakout drives a tile-based Breakout engine in the terminal.
//
// Usage:
//
//	breakout list              - List registered engines
//	breakout play              - Play the configured engine
//	breakout serve             - Start SSH server for remote play
//	breakout scores [engine]   - Show high scores
//	breakout snapshot          - Render a frame to PNG without a terminal
//
// Global flags:
//
//	--config <path>   - Driver config YAML (default: search order)
//	--engine <id>     - Engine to run (overrides config)
//	--fps <rate>      - Set tick rate (default: from config, 20)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.breakout/scores.db)
//	--log <path>      - Write debug logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/storage"

	// Import engines to register them
	_ "github.com/vovakirdan/tui-breakout/internal/engine/breakout"
	_ "github.com/vovakirdan/tui-breakout/internal/engine/intcode"
)

var (
	// Global flags
	flagConfig   string
	flagEngine   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - a frame driver for tile-based Breakout engines",
	Long: `Breakout runs a stepping Breakout engine at a fixed frame rate,
translates keys into a paddle joystick and renders the tile board.

Available commands:
  list      - Show all registered engines
  play      - Play in the terminal
  serve     - Start SSH server for remote play
  scores    - View high scores
  snapshot  - Render frames to a PNG file

Examples:
  breakout play
  breakout play --engine intcode --program ./game.txt --free-play
  breakout serve --ssh :2222
  breakout snapshot --steps 100 --out frame.png`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to driver config YAML")
	rootCmd.PersistentFlags().StringVar(&flagEngine, "engine", "", "Engine ID (see 'breakout list')")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate in steps per second (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, or time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// loadConfig loads the driver config and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagEngine != "" {
		cfg.Engine = flagEngine
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

// newLogger opens the --log file. Without one, logs go to w.
// The returned closer is always safe to call.
func newLogger(w io.Writer, prefix string) (*log.Logger, func(), error) {
	closer := func() {}
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closer()
		return nil, func() {}, err
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
