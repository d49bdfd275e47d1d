package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rpgo/corpus-projector/internal/config"
	"github.com/rpgo/corpus-projector/internal/domain"
	"github.com/rpgo/corpus-projector/internal/output"
	"github.com/rpgo/corpus-projector/internal/server"
)

// --- Project Command ---

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project <plan.yaml>",
		Short: "Project all scenarios and suggest expense deferrals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format == "" {
				format = a.settings.Format
			}
			dir, _ := cmd.Flags().GetString("output")
			return a.project(cmd, args[0], format, dir)
		},
	}
	cmd.Flags().StringP("format", "f", "", fmt.Sprintf("output format: %s, all (default from settings)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringP("output", "o", "", "directory to write report files to (default: stdout)")
	return cmd
}

func (a *app) project(cmd *cobra.Command, planFile, format, dir string) error {
	if dir == "" && output.NormalizeFormatName(format) == "all" {
		return fmt.Errorf("format %q writes several report files and requires --output", format)
	}

	plan, err := a.parser.LoadFromFile(planFile)
	if err != nil {
		return err
	}

	results, err := a.engine.CalculateFinances(runContext(cmd), plan)
	if err != nil {
		return fmt.Errorf("projection failed: %w", err)
	}

	if dir == "" {
		f := output.GetFormatterByName(format)
		if f == nil {
			return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
		}
		data, err := f.Format(results)
		if err != nil {
			return err
		}
		return writeTo(cmd.OutOrStdout(), data)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	files, err := output.GenerateReport(results, format, dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
	}
	return nil
}

// --- Scenario Command ---

func newScenarioCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario <plan.yaml>",
		Short: "Print the yearly ledger of a single scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("scenario")
			kind, err := domain.ParseScenarioKind(name)
			if err != nil {
				return err
			}
			ignore, _ := cmd.Flags().GetBool("ignore-expenses")
			format, _ := cmd.Flags().GetString("format")
			return a.scenario(cmd, args[0], kind, ignore, format)
		},
	}
	cmd.Flags().StringP("scenario", "s", string(domain.ScenarioMedian), "scenario: median, best or worst")
	cmd.Flags().Bool("ignore-expenses", false, "project the baseline without major expenses")
	cmd.Flags().StringP("format", "f", "table", "output format: table, csv or json")
	return cmd
}

func (a *app) scenario(cmd *cobra.Command, planFile string, kind domain.ScenarioKind, ignore bool, format string) error {
	plan, err := a.parser.LoadFromFile(planFile)
	if err != nil {
		return err
	}
	result, err := a.engine.CalculateScenario(plan, kind, ignore)
	if err != nil {
		return fmt.Errorf("projection failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		return writeTo(out, append(data, '\n'))
	case "csv":
		single := &domain.FullProjection{}
		switch kind {
		case domain.ScenarioBest:
			single.Best = result
		case domain.ScenarioWorst:
			single.Worst = result
		default:
			single.Median = result
		}
		data, err := output.CSVDetailedExporter{}.Format(single)
		if err != nil {
			return err
		}
		return writeTo(out, data)
	case "table", "":
		printLedger(cmd, result)
		return nil
	}
	return fmt.Errorf("%w: %q (want table, csv or json)", output.ErrUnsupportedFormat, format)
}

func printLedger(cmd *cobra.Command, r *domain.ScenarioResult) {
	out := cmd.OutOrStdout()
	title := r.Title
	if r.IgnoreExpenses {
		title += " (without major expenses)"
	}
	fmt.Fprintf(out, "%s: %s\n", title, r.Description)
	fmt.Fprintf(out, "Status: %s   Lasts to age: %d   Required corpus: %s   Projected corpus: %s\n\n",
		strings.ToUpper(string(r.Status)), r.FinalAge,
		output.FormatCurrency(r.RequiredCorpus), output.FormatCurrency(r.ProjectedCorpus))

	fmt.Fprintf(out, "%-5s %-6s %-14s %18s %18s %8s %8s  %s\n", "Age", "Year", "Phase", "Cashflow", "Corpus", "Return", "Infl", "Note")
	for _, row := range r.Data {
		fmt.Fprintf(out, "%-5d %-6d %-14s %18s %18s %8s %8s  %s\n",
			row.Age, row.Year, row.Phase,
			output.FormatCurrency(row.Cashflow), output.FormatCurrency(row.Corpus),
			output.FormatPercentage(row.ReturnApplied), output.FormatPercentage(row.InflationApplied),
			row.Note)
	}
}

// --- Example Command ---

func newExampleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "plan.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			withExpense, _ := cmd.Flags().GetBool("with-expense")

			plan := a.parser.CreateExamplePlan()
			if withExpense {
				plan.MajorExpenses = append(plan.MajorExpenses, config.NewMajorExpense(plan.CurrentAge))
			}
			if err := a.parser.SavePlan(plan, filename); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example plan written to %s\n", filepath.Clean(filename))
			return nil
		},
	}
	cmd.Flags().Bool("with-expense", false, "include a starter major expense")
	return cmd
}

// --- Serve Command ---

func (a *app) serve(ctx context.Context) error {
	srv := server.New(a.engine, a.settings.Server, a.logger)
	return srv.ListenAndServe(ctx, a.settings.Server.Addr)
}
