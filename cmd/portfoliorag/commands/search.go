package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"portfoliorag/internal/domain"
)

var (
	searchTopK          int
	searchMinSimilarity float64
	searchNoBoost       bool
	searchExpand        bool
	searchJSON          bool
	searchContext       bool
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the index",
		Long: `Score every indexed chunk against a query and print the ranked results.

Examples:
  portfoliorag search "compétences TypeScript"
  portfoliorag search --top-k 8 --min-similarity 0.1 "projets IA"
  portfoliorag search --expand --context "dev js"
  portfoliorag search --json "formation"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchTopK, "top-k", 0, "Maximum results (0: index default)")
	cmd.Flags().Float64Var(&searchMinSimilarity, "min-similarity", -1, "Minimum boosted similarity in [0,1] (negative: index default)")
	cmd.Flags().BoolVar(&searchNoBoost, "no-boost", false, "Rank by raw cosine similarity")
	cmd.Flags().BoolVar(&searchExpand, "expand", false, "Also search abbreviation expansions of the query")
	cmd.Flags().BoolVar(&searchJSON, "json", false, "Print the full response as JSON")
	cmd.Flags().BoolVar(&searchContext, "context", false, "Print the assembled context block")

	return cmd
}

func searchOptions() (domain.SearchOptions, error) {
	if err := validateNonNegativeInt(searchTopK, "top-k"); err != nil {
		return domain.SearchOptions{}, err
	}
	opts := domain.SearchOptions{TopK: searchTopK, NoBoost: searchNoBoost}
	if searchMinSimilarity >= 0 {
		if searchMinSimilarity > 1 {
			return opts, fmt.Errorf("min-similarity must be within [0,1], got %g", searchMinSimilarity)
		}
		opts.MinSimilarity = domain.Threshold(searchMinSimilarity)
	}
	return opts, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts, err := searchOptions()
	if err != nil {
		return err
	}
	cfg, l, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg, l)
	if err != nil {
		return err
	}

	query := args[0]
	var (
		resp     *domain.SearchResponse
		expanded []string
		payload  any
	)
	if searchExpand {
		out, err := engine.SearchWithExpansion(query, opts)
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}
		resp, expanded, payload = &out.SearchResponse, out.ExpandedQueries, out
	} else {
		resp, err = engine.Search(query, opts)
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}
		payload = resp
	}

	w := cmd.OutOrStdout()
	if searchJSON {
		return writeJSON(w, payload)
	}

	if len(expanded) > 0 {
		fmt.Fprintf(w, "Queries: %v\n\n", expanded)
	}
	if !resp.HasResults {
		fmt.Fprintf(w, "No results for query: %s\n", query)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tSCORE\tCOSINE\tTYPE\tTITLE\tPREVIEW\n")
	for i, r := range resp.Results {
		fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%s\t%s\t%s\n",
			i+1, r.Similarity, r.BaseSimilarity, r.Type, truncate(r.Title, 30), truncate(oneLine(r.Content), 60))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nFound %d result(s), %d of %d chunks above threshold\n",
		len(resp.Results), resp.Stats.FoundChunks, resp.Stats.TotalChunks)

	if searchContext {
		fmt.Fprintf(w, "\n%s\n", resp.Context)
	}
	return nil
}
