package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var benchJSON bool

// NewBenchCmd creates the bench command.
func NewBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench [queries...]",
		Short: "Time searches against the index",
		Long: `Run each query with default options and report its duration and result
count. Without arguments a fixed set of representative queries is used.`,
		RunE: runBench,
	}

	cmd.Flags().BoolVar(&benchJSON, "json", false, "Print the report as JSON")

	return cmd
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg, l)
	if err != nil {
		return err
	}

	report, err := engine.Benchmark(args)
	if err != nil {
		return fmt.Errorf("benchmark: %w", err)
	}

	w := cmd.OutOrStdout()
	if benchJSON {
		return writeJSON(w, report)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "QUERY\tDURATION\tRESULTS\n")
	for _, r := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Query, r.Duration, r.ResultsCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d queries, average %s\n", report.TotalQueries, report.AverageDuration)
	return nil
}
