package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/timescale/internal/config"
	"github.com/san-kum/timescale/internal/physics"
	"github.com/san-kum/timescale/internal/timescale"
	"github.com/san-kum/timescale/internal/trace"
	"github.com/spf13/cobra"
)

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	script := trace.DefaultScript()
	if len(args) == 1 {
		if script, err = trace.LoadScript(args[0]); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("rate") {
		script.Rate = rate
	}
	if cmd.Flags().Changed("duration") {
		script.Duration = duration
	}
	trans := cfg.Panel.TransitionDuration
	if cmd.Flags().Changed("transition") {
		trans = transition
	}

	eng, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	samples, err := trace.Run(cmd.Context(), script, eng, trace.Options{TransitionDuration: trans, Logger: logger})
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("script %q produced no samples", script.Name)
	}

	fmt.Println(trace.Plot(samples, 80, 10))
	last := samples[len(samples)-1]
	fmt.Printf("\n%d ticks  sim time %.3fs  final scale %s  fps %s\n",
		len(samples), last.SimTime, timescale.FormatTimeScale(last.TimeScale), timescale.FormatFrameRate(last.FrameRate))

	if noSave {
		return nil
	}
	st := trace.NewStore(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(trace.Metadata{
		Script:             script.Name,
		Model:              cfg.Engine.Model,
		Rate:               script.Rate,
		Duration:           script.Duration,
		TransitionDuration: trans,
	}, samples)
	if err != nil {
		return fmt.Errorf("save trace: %w", err)
	}
	fmt.Printf("saved: %s\n", id)
	return nil
}

func listTraces(cmd *cobra.Command, args []string) error {
	st := trace.NewStore(dataDir)
	traces, err := st.List()
	if err != nil {
		return err
	}

	if len(traces) == 0 {
		fmt.Println("no traces found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCRIPT\tMODEL\tTIME\tTICKS\tRATE\tFINAL")
	for _, tr := range traces {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.0f\t%s\n",
			tr.ID,
			tr.Script,
			tr.Model,
			tr.Timestamp.Format("2006-01-02 15:04:05"),
			tr.Ticks,
			tr.Rate,
			timescale.FormatTimeScale(tr.FinalTimeScale),
		)
	}
	return w.Flush()
}

func plotTrace(cmd *cobra.Command, args []string) error {
	st := trace.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s, %.0f ticks/s, transition %.2fs)\n\n", meta.ID, meta.Model, meta.Rate, meta.TransitionDuration)
	fmt.Println(trace.Plot(samples, 80, 10))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("time scale presets:")
	for i, p := range cfg.TimeScalePresets() {
		fmt.Printf("  [%d] %-6s %s\n", i+1, p.Label, timescale.FormatTimeScale(p.Value))
	}
	keys := []string{"6", "7", "8", "9", "0"}
	fmt.Println("frame rate presets:")
	for i, p := range cfg.FrameRatePresets() {
		key := " "
		if i < len(keys) {
			key = keys[i]
		}
		fmt.Printf("  [%s] %-6s %s\n", key, p.Label, timescale.FormatFrameRate(p.Value))
	}

	fmt.Println("engine presets:")
	for _, name := range physics.Names() {
		fmt.Printf("  %s: %v\n", name, config.ListPresets(name))
	}
	return nil
}
