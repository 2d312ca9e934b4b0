package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/san-kum/timescale/internal/config"
	"github.com/san-kum/timescale/internal/engine"
	"github.com/san-kum/timescale/internal/integrators"
	"github.com/san-kum/timescale/internal/panel"
	"github.com/san-kum/timescale/internal/timescale"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	model      string
	preset     string
	logFile    string
	debug      bool
	// trace overrides
	rate       float64
	duration   float64
	transition float64
	noSave     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "timescale",
		Short:         "adjust simulation time scale and frame rate at runtime",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPanel,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".timescale", "trace data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "model to simulate (overrides config)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "engine preset for the model")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	traceCmd := &cobra.Command{
		Use:   "trace [script.yaml]",
		Short: "replay a time scale script headlessly and plot it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	traceCmd.Flags().Float64Var(&rate, "rate", 0, "ticks per second (overrides script)")
	traceCmd.Flags().Float64Var(&duration, "duration", 0, "seconds of wall time (overrides script)")
	traceCmd.Flags().Float64Var(&transition, "transition", 0, "transition duration in seconds (overrides config)")
	traceCmd.Flags().BoolVar(&noSave, "no-save", false, "do not save the trace")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved traces",
		RunE:  listTraces,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [trace_id]",
		Short: "plot a saved trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTrace,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list time scale, frame rate and engine presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	rootCmd.AddCommand(traceCmd, listCmd, plotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newLogger writes to --log-file when given, otherwise to fallback.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w, closer := fallback, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "timescale",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// loadConfig layers --config, --model and --preset over the defaults.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if model != "" && model != cfg.Engine.Model {
		cfg.Engine.Model = model
		cfg.Engine.InitState = nil
		cfg.Engine.Params = nil
	}
	if preset != "" && !cfg.ApplyPreset(cfg.Engine.Model, preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Engine.Model))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildEngine(cfg *config.Config, logger *log.Logger) (*engine.Engine, error) {
	sys, err := cfg.NewSystem()
	if err != nil {
		return nil, err
	}
	integ, err := integrators.New(cfg.Engine.Integrator)
	if err != nil {
		return nil, err
	}
	return engine.New(sys, integ, cfg.GetInitState(), cfg.EngineConfig(), engine.WithLogger(logger))
}

func runPanel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// The panel owns the terminal, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	eng, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	m := panel.New(eng, timescale.NewSystemClock(), panel.WithConfig(cfg), panel.WithLogger(logger))
	p := tea.NewProgram(m, tea.WithAltScreen())

	if configFile != "" {
		w, err := config.Watch(configFile)
		if err != nil {
			logger.Warn("config hot reload disabled", "err", err)
		} else {
			defer w.Close()
			go forwardReloads(w, p)
		}
	}

	logger.Info("panel open", "model", cfg.Engine.Model, "time_scale", eng.TimeScale(), "fps", timescale.FormatFrameRate(eng.TargetFrameRate()))
	_, err = p.Run()
	return err
}

func forwardReloads(w *config.Watcher, p *tea.Program) {
	for {
		select {
		case cfg, ok := <-w.Configs:
			if !ok {
				return
			}
			p.Send(panel.ConfigMsg{Config: cfg})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			p.Send(panel.ErrMsg{Err: err})
		}
	}
}
