package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"portfoliorag/internal/chunker"
	"portfoliorag/internal/embedding/keyword"
	"portfoliorag/internal/index"
	"portfoliorag/internal/summarizer"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [document]",
		Short: "Build the search index from a résumé",
		Long: `Chunk a résumé into labeled sections, vectorize every chunk and write
the index artifact atomically.

Without an argument the document is document.path from the config, or the
first *.txt file in document.dir whose name contains "cv" or "resume".

Examples:
  portfoliorag build
  portfoliorag build data/documents/cv.txt
  portfoliorag build --index /tmp/index.json cv.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBuild,
	}
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	var path string
	switch {
	case len(args) == 1:
		path = args[0]
	case cfg.Document.Path != "":
		path = cfg.Document.Path
	default:
		path, err = index.LocateDocument(cfg.Document.Dir)
		if err != nil {
			return err
		}
	}

	ch := chunker.NewSectionChunker(
		chunker.WithMinContentLength(cfg.Index.MinChunkLength),
		chunker.WithMaxHeaderLength(cfg.Index.MaxHeaderLength),
	)
	vec := keyword.New(cfg.Vectorizer.Keywords,
		keyword.WithScale(cfg.Vectorizer.ScaleChars),
		keyword.WithPrimaryBoost(cfg.Vectorizer.PrimaryBoost),
		keyword.WithPrimaryTerms(cfg.Vectorizer.PrimaryTerms),
	)
	builder := index.NewBuilder(ch, vec,
		index.WithSummarizer(summarizer.NewFrequencySummarizer(), cfg.Summarizer.MaxSentences),
		index.WithSearchDefaults(cfg.Index.DefaultTopK, cfg.Index.MinSimilarity),
		index.WithVersion(cfg.Index.Version),
		index.WithLogger(l),
	)

	art, err := builder.Build(path)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	out := indexPath(cfg)
	if err := index.Save(out, art); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	l.Info("index written", "path", out, "chunks", art.TotalChunks)

	stats := art.Stats()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Index written to %s\n", out)
	fmt.Fprintf(w, "Document: %s  Chunks: %d  Dimensions: %d\n\n", path, stats.TotalChunks, stats.EmbeddingDimensions)

	types := make([]string, 0, len(stats.SectionCounts))
	for t := range stats.SectionCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "TYPE\tCHUNKS\n")
	for _, t := range types {
		fmt.Fprintf(tw, "%s\t%d\n", t, stats.SectionCounts[t])
	}
	return tw.Flush()
}
