package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsJSON bool

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Long:  `Display the index version, build id, totals, per-document metadata and chunk counts per section type.`,
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	cmd.Flags().BoolVar(&statsJSON, "json", false, "Print statistics as JSON")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg, l)
	if err != nil {
		return err
	}

	stats := engine.Stats()
	w := cmd.OutOrStdout()
	if statsJSON {
		return writeJSON(w, stats)
	}

	fmt.Fprintf(w, "Version:    %s\n", stats.Version)
	fmt.Fprintf(w, "Build ID:   %s\n", stats.BuildID)
	fmt.Fprintf(w, "Built at:   %s\n", stats.BuildAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Documents:  %d\n", stats.TotalDocuments)
	fmt.Fprintf(w, "Chunks:     %d\n", stats.TotalChunks)
	fmt.Fprintf(w, "Dimensions: %d\n", stats.EmbeddingDimensions)

	for _, d := range stats.Documents {
		fmt.Fprintf(w, "\n%s (%d chunks)\n", d.Filename, d.ChunksCount)
		if d.Summary != "" {
			fmt.Fprintf(w, "  %s\n", d.Summary)
		}
	}

	types := make([]string, 0, len(stats.SectionCounts))
	for t := range stats.SectionCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "TYPE\tCHUNKS\n")
	for _, t := range types {
		fmt.Fprintf(tw, "%s\t%d\n", t, stats.SectionCounts[t])
	}
	return tw.Flush()
}
