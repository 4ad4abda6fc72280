// Package chat streams answers from an OpenAI-compatible chat completion
// endpoint, grounded in the context assembled by the retrieval engine.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"portfoliorag/internal/domain"
)

// ErrRateLimited indicates the endpoint answered HTTP 429.
var ErrRateLimited = errors.New("rate limit reached")

const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "llama-3.1-8b-instant"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 800
	DefaultTimeout     = 60 * time.Second
)

// Config holds the connection and generation settings.
type Config struct {
	BaseURL       string
	APIKey        string
	Model         string
	Temperature   float32
	MaxTokens     int
	Timeout       time.Duration
	AssistantName string
}

// Request is one grounded question.
type Request struct {
	Message string
	Context string
	Sources []domain.Source
}

// Client wraps the go-openai client.
type Client struct {
	client        *openai.Client
	model         string
	temperature   float32
	maxTokens     int
	assistantName string
}

// NewClient creates a Client. An empty API key yields domain.ErrChatUnavailable.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: API key is required", domain.ErrChatUnavailable)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		client:        openai.NewClientWithConfig(oc),
		model:         cfg.Model,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxTokens,
		assistantName: cfg.AssistantName,
	}, nil
}

// Model returns the configured model id.
func (c *Client) Model() string { return c.model }

func (c *Client) request(req Request, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt(req.Context, req.Sources, c.assistantName)},
			{Role: openai.ChatMessageRoleUser, Content: req.Message},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Stream:      stream,
	}
}

// Stream sends req and calls onToken for every content delta in order. It
// returns the full answer. An error from onToken stops the stream.
func (c *Client) Stream(ctx context.Context, req Request, onToken func(string) error) (string, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, c.request(req, true))
	if err != nil {
		return "", wrapAPIError(err)
	}
	defer stream.Close()

	var answer strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return answer.String(), nil
		}
		if err != nil {
			return answer.String(), wrapAPIError(err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		token := resp.Choices[0].Delta.Content
		if token == "" {
			continue
		}
		answer.WriteString(token)
		if onToken != nil {
			if err := onToken(token); err != nil {
				return answer.String(), err
			}
		}
	}
}

// Complete sends req without streaming and returns the answer.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.request(req, false))
	if err != nil {
		return "", wrapAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from chat endpoint")
	}
	return resp.Choices[0].Message.Content, nil
}

func wrapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, reqErr)
	}
	return fmt.Errorf("chat completion: %w", err)
}
