// corpus projects a retirement corpus across median, optimistic and
// pessimistic market scenarios and suggests safer ages for major purchases.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rpgo/corpus-projector/internal/calculation"
	"github.com/rpgo/corpus-projector/internal/config"
	"github.com/rpgo/corpus-projector/pkg/logging"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the state shared by every subcommand once settings are loaded.
type app struct {
	settings *config.Settings
	logger   *slog.Logger
	parser   *config.InputParser
	engine   *calculation.CalculationEngine
}

func newRootCmd() *cobra.Command {
	a := &app{parser: config.NewInputParser()}

	root := &cobra.Command{
		Use:   "corpus",
		Short: "Retirement corpus projector",
		Long: `corpus projects a retirement corpus year by year under three market
scenarios (median, optimistic, pessimistic), compares each against an
expense-free baseline and searches for purchase ages that keep the plan
on track.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "settings file path (default: ./config/corpus.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().Int("base-year", 0, "calendar year of the first projected row (default: current year)")

	root.AddCommand(
		newProjectCmd(a),
		newScenarioCmd(a),
		newExampleCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	var err error
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		a.settings, err = config.LoadSettingsFromFile(configFile)
	} else {
		a.settings, err = config.LoadSettings()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		a.settings.LogLevel = level
	}
	if year, _ := cmd.Flags().GetInt("base-year"); year > 0 {
		a.settings.BaseYear = year
	}

	a.logger = logging.New(cmd.ErrOrStderr(), logging.ParseLevel(a.settings.LogLevel))
	slog.SetDefault(a.logger)

	// A zero base year keeps following the clock, which matters for serve.
	a.engine = calculation.NewCalculationEngineForYear(a.settings.BaseYear)
	a.engine.Workers = a.settings.Workers
	a.engine.SetLogger(calculation.NewSlogLogger(a.logger))
	return nil
}

// --- Version Command ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip settings loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "corpus %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				a.settings.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from settings, :8080)")
	return cmd
}

func writeTo(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// runContext returns the command context, falling back to Background for
// commands executed without one.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
