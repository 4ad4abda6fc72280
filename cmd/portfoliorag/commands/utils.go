package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"portfoliorag/internal/config"
	"portfoliorag/internal/logger"
	"portfoliorag/internal/service"
)

// loadEnv reads .env, the config file and builds the logger. Logs go to stderr
// so stdout stays clean for --json output.
func loadEnv(cmd *cobra.Command) (*config.AppConfig, *log.Logger, error) {
	_ = godotenv.Load()

	var (
		cfg *config.AppConfig
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	l, err := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format, verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

// indexPath returns the --index flag or the configured artifact path.
func indexPath(cfg *config.AppConfig) string {
	if indexFile != "" {
		return indexFile
	}
	return cfg.Index.Path
}

// openEngine loads the index and applies the search and boost settings.
func openEngine(cfg *config.AppConfig, l *log.Logger) (*service.Engine, error) {
	engine, err := service.Open(indexPath(cfg),
		service.WithBoostConfig(cfg.BoostConfig()),
		service.WithContextMaxChars(cfg.Search.ContextMaxChars),
		service.WithContextOrder(cfg.Search.ContextOrder),
		service.WithPreviewChars(cfg.Search.PreviewChars),
		service.WithExpansion(cfg.Search.ExpansionVariants, cfg.Search.ExpansionTopK),
		service.WithLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", indexPath(cfg), err)
	}
	return engine, nil
}

// writeJSON prints v indented.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// oneLine collapses all whitespace runs, newlines included, to single spaces.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// validateNonNegativeInt returns an error if n is negative.
func validateNonNegativeInt(n int, name string) error {
	if n < 0 {
		return fmt.Errorf("%s must not be negative, got %d", name, n)
	}
	return nil
}
