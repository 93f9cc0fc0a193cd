package openai

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/dossier-eval/internal/llm"
)

// Config for an OpenAI-compatible chat-completions endpoint (OpenAI, LM Studio, vLLM...).
type Config struct {
	URL          string        // full chat/completions URL
	APIKey       string        // optional; sent as a bearer token when set
	Model        string        // e.g. "gemma-3-27b-it-qat"
	MaxTokens    int           // bound on generated tokens
	Timeout      time.Duration // hard http client timeout
	SystemPrompt string        // defaults to llm.SystemPrompt
	Template     string        // defaults to llm.EvaluationTemplate
}

type Client struct {
	cfg      Config
	http     *http.Client
	envelope *jsonschema.Schema
	logger   *slog.Logger
}

const DefaultURL = "http://localhost:1234/v1/chat/completions"

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = "gemma-3-27b-it-qat"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 500
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = llm.SystemPrompt
	}
	if cfg.Template == "" {
		cfg.Template = llm.EvaluationTemplate
	}
	if logger == nil {
		logger = slog.Default()
	}
	envelope, err := llm.CompileSchema("chat_completion.json", llm.ChatCompletionEnvelopeSchema())
	if err != nil {
		return nil, err
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		envelope: envelope,
		logger:   logger,
	}, nil
}

// Config returns a copy of the effective configuration.
func (c *Client) Config() Config { return c.cfg }

// modelsURL maps .../chat/completions to .../models.
func (c *Client) modelsURL() string {
	base := strings.TrimRight(c.cfg.URL, "/")
	base = strings.TrimSuffix(base, "/chat/completions")
	return base + "/models"
}

func (c *Client) headers() map[string]string {
	if c.cfg.APIKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
}
