package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"portfoliorag/internal/similarity"
)

// DocumentConfig locates the source document.
type DocumentConfig struct {
	Dir  string `yaml:"dir" toml:"dir"`
	Path string `yaml:"path,omitempty" toml:"path,omitempty"`
}

// IndexConfig controls chunking and the defaults frozen into the artifact.
type IndexConfig struct {
	Path            string  `yaml:"path" toml:"path"`
	Version         string  `yaml:"version" toml:"version"`
	MinChunkLength  int     `yaml:"min_chunk_length" toml:"min_chunk_length"`
	MaxHeaderLength int     `yaml:"max_header_length" toml:"max_header_length"`
	DefaultTopK     int     `yaml:"default_top_k" toml:"default_top_k"`
	MinSimilarity   float64 `yaml:"min_similarity" toml:"min_similarity"`
}

// VectorizerConfig configures the keyword vectorizer used at build time.
// An empty Keywords list selects the built-in vocabulary.
type VectorizerConfig struct {
	ScaleChars   float64  `yaml:"scale_chars" toml:"scale_chars"`
	PrimaryBoost float64  `yaml:"primary_boost" toml:"primary_boost"`
	PrimaryTerms []string `yaml:"primary_terms" toml:"primary_terms"`
	Keywords     []string `yaml:"keywords,omitempty" toml:"keywords,omitempty"`
}

// SearchConfig configures context assembly and query expansion.
type SearchConfig struct {
	ContextMaxChars   int    `yaml:"context_max_chars" toml:"context_max_chars"`
	ContextOrder      string `yaml:"context_order" toml:"context_order"`
	PreviewChars      int    `yaml:"preview_chars" toml:"preview_chars"`
	ExpansionVariants int    `yaml:"expansion_variants" toml:"expansion_variants"`
	ExpansionTopK     int    `yaml:"expansion_top_k" toml:"expansion_top_k"`
}

// BoostsConfig holds the rank boost constants.
type BoostsConfig struct {
	Sections       map[string]float64 `yaml:"sections" toml:"sections"`
	ExactMatchStep float64            `yaml:"exact_match_step" toml:"exact_match_step"`
	TitleMatchStep float64            `yaml:"title_match_step" toml:"title_match_step"`
	NotableStep    float64            `yaml:"notable_step" toml:"notable_step"`
	NotableTerms   []string           `yaml:"notable_terms" toml:"notable_terms"`
	Ceiling        float64            `yaml:"ceiling" toml:"ceiling"`
}

// SummarizerConfig configures the document summary stored in the index.
type SummarizerConfig struct {
	MaxSentences int `yaml:"max_sentences" toml:"max_sentences"`
}

// ChatConfig configures the OpenAI-compatible chat completion endpoint.
type ChatConfig struct {
	BaseURL       string  `yaml:"base_url" toml:"base_url"`
	APIKeyEnv     string  `yaml:"api_key_env" toml:"api_key_env"`
	Model         string  `yaml:"model" toml:"model"`
	Temperature   float32 `yaml:"temperature" toml:"temperature"`
	MaxTokens     int     `yaml:"max_tokens" toml:"max_tokens"`
	TimeoutSecs   int     `yaml:"timeout_secs" toml:"timeout_secs"`
	AssistantName string  `yaml:"assistant_name" toml:"assistant_name"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Document   DocumentConfig   `yaml:"document" toml:"document"`
	Index      IndexConfig      `yaml:"index" toml:"index"`
	Vectorizer VectorizerConfig `yaml:"vectorizer" toml:"vectorizer"`
	Search     SearchConfig     `yaml:"search" toml:"search"`
	Boosts     BoostsConfig     `yaml:"boosts" toml:"boosts"`
	Summarizer SummarizerConfig `yaml:"summarizer" toml:"summarizer"`
	Chat       ChatConfig       `yaml:"chat" toml:"chat"`
	Log        LogConfig        `yaml:"log" toml:"log"`
}

// Load reads a config from path. A missing file yields the defaults. Files
// ending in .toml are decoded as TOML, anything else as YAML. Keys absent
// from the file keep their default values.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml, then ./config.toml, then
// ~/.config/portfoliorag/config.yaml. If none exists, it writes the defaults
// to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	for _, p := range []string{"config.yaml", "config.toml"} {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to path as TOML or YAML by extension, creating
// directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values the build or search pipeline cannot honour.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Index.Path == "" {
		errs = append(errs, errors.New("index.path must be set"))
	}
	if c.Index.MinChunkLength < 0 {
		errs = append(errs, fmt.Errorf("index.min_chunk_length must not be negative, got %d", c.Index.MinChunkLength))
	}
	if c.Index.DefaultTopK <= 0 {
		errs = append(errs, fmt.Errorf("index.default_top_k must be positive, got %d", c.Index.DefaultTopK))
	}
	if c.Index.MinSimilarity < 0 || c.Index.MinSimilarity > 1 {
		errs = append(errs, fmt.Errorf("index.min_similarity must be 0-1, got %v", c.Index.MinSimilarity))
	}
	if c.Vectorizer.ScaleChars <= 0 {
		errs = append(errs, fmt.Errorf("vectorizer.scale_chars must be positive, got %v", c.Vectorizer.ScaleChars))
	}
	if c.Search.ContextMaxChars <= 0 {
		errs = append(errs, fmt.Errorf("search.context_max_chars must be positive, got %d", c.Search.ContextMaxChars))
	}
	if c.Search.ContextOrder != "priority" && c.Search.ContextOrder != "rank" {
		errs = append(errs, fmt.Errorf("search.context_order must be priority or rank, got %q", c.Search.ContextOrder))
	}
	for name, m := range c.Boosts.Sections {
		if m <= 0 {
			errs = append(errs, fmt.Errorf("boosts.sections.%s must be positive, got %v", name, m))
		}
	}
	if c.Boosts.ExactMatchStep < 0 || c.Boosts.TitleMatchStep < 0 || c.Boosts.NotableStep < 0 {
		errs = append(errs, errors.New("boosts steps must not be negative"))
	}
	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		errs = append(errs, fmt.Errorf("chat.temperature must be 0-2, got %v", c.Chat.Temperature))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text, json or logfmt, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// BoostConfig converts the boosts section for the similarity package.
func (c *AppConfig) BoostConfig() similarity.BoostConfig {
	cfg := similarity.DefaultBoostConfig()
	if c.Boosts.Sections != nil {
		cfg.SectionMultipliers = c.Boosts.Sections
	}
	cfg.ExactMatchStep = c.Boosts.ExactMatchStep
	cfg.TitleMatchStep = c.Boosts.TitleMatchStep
	cfg.NotableStep = c.Boosts.NotableStep
	if c.Boosts.NotableTerms != nil {
		cfg.NotableTerms = c.Boosts.NotableTerms
	}
	if c.Boosts.Ceiling > 0 {
		cfg.Ceiling = c.Boosts.Ceiling
	}
	return cfg
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "portfoliorag", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Document: DocumentConfig{Dir: filepath.Join("data", "documents")},
		Index: IndexConfig{
			Path:            filepath.Join("data", "processed", "index.json"),
			Version:         "2.0",
			MinChunkLength:  6,
			MaxHeaderLength: 48,
			DefaultTopK:     4,
			MinSimilarity:   0.05,
		},
		Vectorizer: VectorizerConfig{
			ScaleChars:   150,
			PrimaryBoost: 1.3,
			PrimaryTerms: []string{"react", "typescript", "javascript", "csharp", "rust", "nextjs", "wpf"},
		},
		Search: SearchConfig{
			ContextMaxChars:   1500,
			ContextOrder:      "priority",
			PreviewChars:      100,
			ExpansionVariants: 3,
			ExpansionTopK:     5,
		},
		Boosts: BoostsConfig{
			Sections:       similarity.DefaultSectionMultipliers(),
			ExactMatchStep: similarity.DefaultExactMatchStep,
			TitleMatchStep: similarity.DefaultTitleMatchStep,
			NotableStep:    similarity.DefaultNotableStep,
			NotableTerms:   append([]string(nil), similarity.DefaultNotableTerms...),
			Ceiling:        similarity.DefaultCeiling,
		},
		Summarizer: SummarizerConfig{MaxSentences: 3},
		Chat: ChatConfig{
			BaseURL:       "https://api.groq.com/openai/v1",
			APIKeyEnv:     "GROQ_API_KEY",
			Model:         "llama-3.1-8b-instant",
			Temperature:   0.7,
			MaxTokens:     800,
			TimeoutSecs:   60,
			AssistantName: "John Developer",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// applyConfigDefaults restores defaults for fields a file set to their zero value.
func applyConfigDefaults(cfg *AppConfig) {
	d := Default()
	if cfg.Document.Dir == "" {
		cfg.Document.Dir = d.Document.Dir
	}
	if cfg.Index.Path == "" {
		cfg.Index.Path = d.Index.Path
	}
	if cfg.Index.Version == "" {
		cfg.Index.Version = d.Index.Version
	}
	if cfg.Index.MaxHeaderLength == 0 {
		cfg.Index.MaxHeaderLength = d.Index.MaxHeaderLength
	}
	if cfg.Index.DefaultTopK == 0 {
		cfg.Index.DefaultTopK = d.Index.DefaultTopK
	}
	if cfg.Vectorizer.ScaleChars == 0 {
		cfg.Vectorizer.ScaleChars = d.Vectorizer.ScaleChars
	}
	if cfg.Vectorizer.PrimaryBoost == 0 {
		cfg.Vectorizer.PrimaryBoost = d.Vectorizer.PrimaryBoost
	}
	if cfg.Search.ContextMaxChars == 0 {
		cfg.Search.ContextMaxChars = d.Search.ContextMaxChars
	}
	if cfg.Search.ContextOrder == "" {
		cfg.Search.ContextOrder = d.Search.ContextOrder
	}
	if cfg.Search.PreviewChars == 0 {
		cfg.Search.PreviewChars = d.Search.PreviewChars
	}
	if cfg.Search.ExpansionVariants == 0 {
		cfg.Search.ExpansionVariants = d.Search.ExpansionVariants
	}
	if cfg.Search.ExpansionTopK == 0 {
		cfg.Search.ExpansionTopK = d.Search.ExpansionTopK
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = d.Summarizer.MaxSentences
	}
	if cfg.Chat.BaseURL == "" {
		cfg.Chat.BaseURL = d.Chat.BaseURL
	}
	if cfg.Chat.APIKeyEnv == "" {
		cfg.Chat.APIKeyEnv = d.Chat.APIKeyEnv
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = d.Chat.Model
	}
	if cfg.Chat.MaxTokens == 0 {
		cfg.Chat.MaxTokens = d.Chat.MaxTokens
	}
	if cfg.Chat.TimeoutSecs == 0 {
		cfg.Chat.TimeoutSecs = d.Chat.TimeoutSecs
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = d.Log.Format
	}
}
