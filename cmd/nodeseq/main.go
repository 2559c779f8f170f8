// Command nodeseq runs the node-graph sequencer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/ingyamilmolinar/nodeseq/core/engine"
	"github.com/ingyamilmolinar/nodeseq/internal/audio"
	"github.com/ingyamilmolinar/nodeseq/internal/config"
	game_log "github.com/ingyamilmolinar/nodeseq/internal/log"
	"github.com/ingyamilmolinar/nodeseq/internal/ui"
)

var (
	configPath string
	logLevel   string
	width      int
	height     int
	demo       bool
	duration   time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "nodeseq",
	Short:        "Node-graph sequencer: signals travel edges and trigger drum samples",
	SilenceUsage: true,
	RunE:         runWindow,
}

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the simulation without a window, logging arrivals",
	RunE:  runHeadless,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error, none)")
	rootCmd.PersistentFlags().BoolVar(&demo, "demo", false, "Start with the demo graph")
	rootCmd.Flags().IntVar(&width, "width", 0, "Window width in pixels")
	rootCmd.Flags().IntVar(&height, "height", 0, "Window height in pixels")
	headlessCmd.Flags().DurationVar(&duration, "duration", 30*time.Second, "How long to run")

	rootCmd.AddCommand(headlessCmd)
}

// setup loads the config and builds the session shared by both commands.
func setup() (config.Config, *game_log.Logger, *audio.Service, *engine.State, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if width > 0 {
		cfg.Window.Width = width
	}
	if height > 0 {
		cfg.Window.Height = height
	}
	logger := game_log.New(os.Stderr, game_log.LevelFromString(cfg.LogLevel))

	player := audio.Open(cfg.AudioService(), logger)
	state := engine.New(cfg.Engine(), player, logger)
	if demo {
		state.SeedDemo(cfg.Spawner.BarDelay)
	}
	return cfg, logger, player, state, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, logger, player, state, err := setup()
	if err != nil {
		return err
	}
	defer player.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ui.TPS)

	logger.Infof("[MAIN] Starting window %dx%d", cfg.Window.Width, cfg.Window.Height)
	if err := ebiten.RunGame(ui.New(state, cfg.Spawner.BarDelay, logger)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	_, logger, player, state, err := setup()
	if err != nil {
		return err
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	runner := engine.NewRunner(state, engine.DefaultTickInterval)
	go func() {
		for {
			select {
			case ev := <-runner.Events:
				if ev.Stats.Arrived > 0 {
					logger.Infof("[MAIN] t=%.3f arrived=%d emitted=%d", ev.Time, ev.Stats.Arrived, ev.Stats.Emitted)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	err = runner.Run(ctx)
	logger.Infof("[MAIN] Played %d samples, dropped %d", player.Played(), player.Dropped())
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
