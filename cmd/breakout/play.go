package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/platform/console"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagHost       string
	flagDifficulty string
	flagProgram    string
	flagFreePlay   bool
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the frame driver on the configured engine.

Controls:
  Left/H/A     - Move paddle left
  Right/L/D    - Move paddle right
  Up/Down      - Stop the paddle
  Space/Enter  - Start, or play again after game over
  Ctrl+S       - Save a screenshot (bubbletea host)
  Ctrl+Y       - Copy the frame as text (bubbletea host)
  Q/Esc        - Quit

Hosts:
  bubbletea  - Bubble Tea program with help and screenshots (default)
  tcell      - Plain tcell screen

Difficulty options (built-in engine):
  easy, normal, hard, fixed

Examples:
  breakout play
  breakout play --difficulty hard
  breakout play --host tcell
  breakout play --engine intcode --program ./game.txt --free-play`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagHost, "host", "bubbletea", "Terminal host: bubbletea or tcell")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagProgram, "program", "", "Intcode program file (intcode engine)")
	playCmd.Flags().BoolVar(&flagFreePlay, "free-play", false, "Patch the Intcode program for free play")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with scores (default: $USER)")
}

// playConfig applies the play flags on top of the loaded config.
func playConfig() (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.Config{}, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		config.ApplyBreakoutPreset(&cfg.Breakout, preset)
	}
	if flagProgram != "" {
		cfg.Intcode.Program = flagProgram
	}
	if flagFreePlay {
		cfg.Intcode.FreePlay = true
	}
	return cfg, cfg.Validate()
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs a terminal; use 'breakout snapshot' for headless frames")
	}

	cfg, err := playConfig()
	if err != nil {
		return err
	}
	if !engine.Exists(cfg.Engine) {
		return fmt.Errorf("unknown engine %q, run 'breakout list' to see registered engines", cfg.Engine)
	}
	factory, err := engine.Bind(cfg.Engine, cfg)
	if err != nil {
		return err
	}

	// Logs would corrupt the screen, so they only go to --log.
	logger, closeLog, err := newLogger(io.Discard, "breakout")
	if err != nil {
		return err
	}
	defer closeLog()

	if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
		logger.Debug("terminal", "width", w, "height", h)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	switch flagHost {
	case "bubbletea", "tea":
		return tui.Run(tui.Options{
			Config:   cfg,
			EngineID: cfg.Engine,
			Factory:  factory,
			Store:    store,
			Player:   player,
			Logger:   logger,
		})

	case "tcell":
		return console.Run(console.Options{
			Config:   cfg,
			EngineID: cfg.Engine,
			Factory:  factory,
			Logger:   logger,
			OnGameOver: func(engineID string, score int) {
				if store == nil {
					return
				}
				if _, err := store.SaveScore(engineID, player, score); err != nil {
					logger.Error("save score", "err", err)
				}
			},
		})

	default:
		return fmt.Errorf("unknown host %q (want bubbletea or tcell)", flagHost)
	}
}
