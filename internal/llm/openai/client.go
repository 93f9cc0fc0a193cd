package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/dossier-eval/internal/common"
	"github.com/joseph-ayodele/dossier-eval/internal/llm"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// temperature is always 0; it is not configurable.
const temperature float32 = 0

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Score implements llm.Scorer. No retries: a failed call yields ok == false.
func (c *Client) Score(ctx context.Context, text string) (string, bool) {
	start := time.Now()
	item := common.ItemIDFromContext(ctx)

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.cfg.SystemPrompt},
			{Role: "user", Content: llm.BuildUserPrompt(c.cfg.Template, text)},
		},
		Temperature: temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	raw, status, err := llm.SendJSON(ctx, c.http, c.cfg.URL, body, c.headers(), c.logger)
	if err != nil {
		c.logger.Error(fmt.Sprintf("IA: %v", err),
			"event", "llm.score.http_error", "item", item, "status", status,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", false
	}

	content, err := c.decodeContent(raw)
	if err != nil {
		c.logger.Error(fmt.Sprintf("IA: %v", err),
			"event", "llm.score.decode_error", "item", item, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", false
	}

	c.logger.Info("llm.score.ok",
		"item", item,
		"model", c.cfg.Model,
		"reply_chars", len([]rune(content)),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, true
}

func (c *Client) decodeContent(raw []byte) (string, error) {
	if err := llm.ValidateJSON(c.envelope, raw); err != nil {
		return "", fmt.Errorf("invalid envelope: %w", err)
	}
	var cc chatResponse
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}

// Ping lists the models served by the endpoint. It is used by the info
// command to report reachability.
func (c *Client) Ping(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, _, err := llm.GetJSON(ctx, c.http, c.modelsURL(), c.headers(), c.logger)
	if err != nil {
		return nil, err
	}
	if err := llm.ValidateJSONAgainstSchema(llm.ModelListSchema(), raw); err != nil {
		return nil, err
	}
	var list struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode models: %w", err)
	}
	ids := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}
