package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"portfoliorag/internal/chat"
	"portfoliorag/internal/domain"
)

var (
	askExpand  bool
	askSources bool
)

// NewAskCmd creates the ask command.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question about the résumé with a chat model",
		Long: `Search the index, build a grounded system prompt from the retrieved
context and stream the answer from an OpenAI-compatible chat endpoint.

The API key is read from the environment variable named by chat.api_key_env
(GROQ_API_KEY by default); a .env file in the working directory is loaded first.

Examples:
  portfoliorag ask "Quelle est ton expérience avec React ?"
  portfoliorag ask --expand --sources "dev js"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().BoolVar(&askExpand, "expand", false, "Search abbreviation expansions of the question")
	cmd.Flags().BoolVar(&askSources, "sources", false, "Print the cited sources after the answer")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	client, err := chat.NewClient(chat.Config{
		BaseURL:       cfg.Chat.BaseURL,
		APIKey:        os.Getenv(cfg.Chat.APIKeyEnv),
		Model:         cfg.Chat.Model,
		Temperature:   cfg.Chat.Temperature,
		MaxTokens:     cfg.Chat.MaxTokens,
		Timeout:       time.Duration(cfg.Chat.TimeoutSecs) * time.Second,
		AssistantName: cfg.Chat.AssistantName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrChatUnavailable) {
			return fmt.Errorf("%w: set %s", err, cfg.Chat.APIKeyEnv)
		}
		return err
	}

	engine, err := openEngine(cfg, l)
	if err != nil {
		return err
	}

	question := args[0]
	var resp *domain.SearchResponse
	if askExpand {
		out, err := engine.SearchWithExpansion(question, domain.SearchOptions{})
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}
		resp = &out.SearchResponse
	} else {
		resp, err = engine.Search(question, domain.SearchOptions{})
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}
	}
	l.Debug("context assembled", "results", len(resp.Results), "chars", len([]rune(resp.Context)), "model", client.Model())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := cmd.OutOrStdout()
	_, err = client.Stream(ctx, chat.Request{
		Message: question,
		Context: resp.Context,
		Sources: resp.Sources,
	}, func(token string) error {
		_, err := fmt.Fprint(w, token)
		return err
	})
	fmt.Fprintln(w)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	if askSources && len(resp.Sources) > 0 {
		fmt.Fprintln(w, "\nSources:")
		for _, s := range resp.Sources {
			fmt.Fprintf(w, "  %d. %s (%s) - %d%%\n", s.Index, s.Title, s.Type, s.Similarity)
		}
	}
	return nil
}
