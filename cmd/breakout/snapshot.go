package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/driver"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/render"
)

var (
	flagOut      string
	flagSteps    int
	flagScale    int
	flagText     bool
	flagJoystick string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render frames to a PNG file",
	Long: `Run the engine headlessly for a number of steps and write the last
frame as a PNG, with the score printed underneath.

Examples:
  breakout snapshot
  breakout snapshot --steps 200 --joystick left --out left.png
  breakout snapshot --engine intcode --program ./game.txt --free-play --steps 0
  breakout snapshot --text`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&flagOut, "out", "frame.png", "Output PNG path")
	snapshotCmd.Flags().IntVar(&flagSteps, "steps", 0, "Steps to run before capturing")
	snapshotCmd.Flags().IntVar(&flagScale, "scale", 1, "Integer upscale factor")
	snapshotCmd.Flags().BoolVar(&flagText, "text", false, "Also print the board as text")
	snapshotCmd.Flags().StringVar(&flagJoystick, "joystick", "neutral", "Held signal: left, right or neutral")
	snapshotCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	snapshotCmd.Flags().StringVar(&flagProgram, "program", "", "Intcode program file (intcode engine)")
	snapshotCmd.Flags().BoolVar(&flagFreePlay, "free-play", false, "Patch the Intcode program for free play")
}

func parseJoystick(s string) (core.ControlSignal, error) {
	switch s {
	case "", "neutral":
		return core.SignalNeutral, nil
	case "left":
		return core.SignalLeft, nil
	case "right":
		return core.SignalRight, nil
	default:
		return core.SignalNeutral, fmt.Errorf("unknown joystick %q (want left, right or neutral)", s)
	}
}

func runSnapshot(_ *cobra.Command, _ []string) error {
	sig, err := parseJoystick(flagJoystick)
	if err != nil {
		return err
	}
	cfg, err := playConfig()
	if err != nil {
		return err
	}
	factory, err := engine.Bind(cfg.Engine, cfg)
	if err != nil {
		return err
	}
	palette, err := render.PaletteFromConfig(cfg.Palette)
	if err != nil {
		return err
	}

	sess, err := driver.NewSession(factory)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.Start()
	sess.SetJoystick(sig)
	steps := 0
	for steps < flagSteps && !sess.Over() {
		sess.Step()
		steps++
	}
	if err := sess.Err(); err != nil {
		return fmt.Errorf("engine stopped after %d steps: %w", steps, err)
	}

	label := fmt.Sprintf("Score: %d  Step: %d", sess.Score(), steps)
	if sess.Over() {
		label += "  Game over"
	}

	r := render.New(cfg.CellEdge, palette)
	var raster *render.Raster
	var text string
	sess.Borrow(func(v core.TileView) {
		raster = r.Rasterize(v, sess.Geometry())
		if flagText {
			text = render.Text(v, sess.Geometry())
		}
	})

	f, err := os.Create(flagOut)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", flagOut, err)
	}
	img := raster.Labeled(label, core.ColorWhite, core.ColorBlack)
	if err := render.EncodePNG(f, img, flagScale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if flagText {
		fmt.Println(text)
	}
	fmt.Printf("Wrote %s (%s)\n", flagOut, label)
	return nil
}
