package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var suggestLimit int

// NewSuggestCmd creates the suggest command.
func NewSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "List starter questions for the indexed résumé",
		Args:  cobra.NoArgs,
		RunE:  runSuggest,
	}

	cmd.Flags().IntVar(&suggestLimit, "limit", 6, "Maximum questions to list")

	return cmd
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg, l)
	if err != nil {
		return err
	}
	for _, q := range engine.Suggestions(suggestLimit) {
		fmt.Fprintln(cmd.OutOrStdout(), q)
	}
	return nil
}
