// Package openrouter provides OpenRouter model integration for meal plan drafts
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mealkit/v1/internal/domain/plan"
	"github.com/mealkit/v1/internal/infrastructure/config"
	"github.com/mealkit/v1/internal/ports/outbound"
)

const previewLimit = 200

// Client implements the CompletionService interface using the
// OpenRouter chat completions API
type Client struct {
	cfg    config.OpenRouterConfig
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a new OpenRouter client
func NewClient(cfg config.OpenRouterConfig, logger *zap.Logger) outbound.CompletionService {
	// A zero timeout means the request runs until the caller cancels.
	var timeout time.Duration
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger.Named("openrouter"),
	}
}

// Chat completions wire structures
type chatRequest struct {
	Model           string         `json:"model"`
	ResponseFormat  map[string]any `json:"response_format"`
	Temperature     float64        `json:"temperature"`
	MaxOutputTokens int            `json:"max_output_tokens"`
	Messages        []chatMessage  `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletion struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// GeneratePlanDraft asks the configured model for a structured weekly
// plan draft. Transient failures are reported as plan.ErrNoCompletion
// so the caller can decide whether to fall back; a cancelled context
// surfaces as the context error instead.
func (c *Client) GeneratePlanDraft(ctx context.Context, req plan.GenerateRequest) (*plan.Draft, error) {
	apiKey, err := c.resolveAPIKey()
	if err != nil {
		return nil, err
	}

	envelope := chatRequest{
		Model:           c.cfg.Model,
		ResponseFormat:  plan.ResponseFormat,
		Temperature:     c.cfg.Temperature,
		MaxOutputTokens: c.cfg.MaxOutputTokens,
		Messages: []chatMessage{
			{Role: "system", Content: buildSystemPrompt()},
			{Role: "user", Content: buildUserPrompt(req)},
		},
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", plan.ErrNoCompletion, err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", plan.ErrNoCompletion, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("HTTP-Referer", c.cfg.Referer)
	httpReq.Header.Set("X-Title", c.cfg.AppTitle)

	c.logger.Info("Requesting OpenRouter model", zap.String("model", c.cfg.Model))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("OpenRouter request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: request failed: %v", plan.ErrNoCompletion, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("OpenRouter response read failed", zap.Error(err))
		return nil, fmt.Errorf("%w: read response: %v", plan.ErrNoCompletion, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("OpenRouter returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", preview(string(respBody))),
		)
		return nil, fmt.Errorf("%w: status %d", plan.ErrNoCompletion, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "json") {
		c.logger.Warn("OpenRouter returned non-JSON content type",
			zap.String("content_type", contentType),
			zap.String("body", preview(string(respBody))),
		)
		return nil, fmt.Errorf("%w: non-JSON content type %q", plan.ErrNoCompletion, contentType)
	}

	var completion chatCompletion
	if err := json.Unmarshal(respBody, &completion); err != nil {
		c.logger.Warn("Unable to parse OpenRouter response",
			zap.Error(err),
			zap.String("body", preview(string(respBody))),
		)
		return nil, fmt.Errorf("%w: parse completion: %v", plan.ErrNoCompletion, err)
	}

	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: missing choices", plan.ErrNoCompletion)
	}

	rawContent := completion.Choices[0].Message.Content
	if strings.TrimSpace(rawContent) == "" {
		return nil, fmt.Errorf("%w: empty content", plan.ErrNoCompletion)
	}

	var draft plan.Draft
	if err := json.Unmarshal([]byte(rawContent), &draft); err != nil {
		c.logger.Warn("Unable to parse meal plan draft",
			zap.Error(err),
			zap.String("content", preview(rawContent)),
		)
		return nil, fmt.Errorf("%w: parse draft: %v", plan.ErrNoCompletion, err)
	}

	c.logger.Info("Meal plan draft received", zap.String("preview", preview(rawContent)))
	return &draft, nil
}

// resolveAPIKey prefers the configured key and falls back to the bare
// OPENROUTER_API_KEY environment variable.
func (c *Client) resolveAPIKey() (string, error) {
	if key := strings.TrimSpace(c.cfg.APIKey); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")); key != "" {
		return key, nil
	}
	return "", plan.ErrMissingAPIKey
}

// preview truncates noisy payloads for log lines.
func preview(content string) string {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) <= previewLimit {
		return trimmed
	}
	return trimmed[:previewLimit] + "..."
}

// buildSystemPrompt describes the required document shape to the model
func buildSystemPrompt() string {
	lines := []string{
		"You create weekly meal plans for families.",
		"Always respond with valid JSON that matches the schema we describe.",
		"The JSON keys must be camelCase.",
		"Include the following blocks: title, summary, days, meta, shopping, budget, prep, pantry, tips.",
		"Limit days to exactly 7 and meals per day to breakfast, lunch, dinner.",
		"Each meal has type, name, description, <=6 ingredients, <=4 instructions, and nutrition.",
		"Nutrition includes calories, protein, carbs, fat, and up to 4 micros.",
		"Do not leave any array empty. Invent fitting meals, snacks, and highlights when details are missing.",
		"Day labels must be weekday names derived from the user's startDate, not numbers.",
		"Meta.summary and meta.dailyHighlights must describe the focus for the week and each day.",
		"Shopping contains items with name, category, quantity, optional flag plus pantryChecks (<=5) and batchCookingIdeas (<=3).",
		"Budget contains estimatedTotal, categoryTotals (<=5), savingsTip.",
		"Prep contains weekendPrep (<=4), dailyQuickPrep (<=4), leftoverIdeas (<=4).",
		"Pantry contains pantryItems (<=10), lowStockAlerts (<=5), ingredientSwaps (<=5).",
		"Keep text concise and omit any unrelated commentary.",
		"Respect the provided timeZoneId when proposing schedules or reminders.",
		"User metrics arrive in pounds for weight and feet/inches for height; convert if you need metric outputs.",
	}
	return strings.Join(lines, "\n") + "\n"
}

// buildUserPrompt serializes the request so the model sees every preference
func buildUserPrompt(req plan.GenerateRequest) string {
	payload, err := json.Marshal(req)
	if err != nil {
		payload = []byte("{}")
	}
	return fmt.Sprintf(
		"Craft a 7 day meal plan using these preferences: %s. "+
			"Ensure every day includes breakfast, lunch, and dinner with detailed nutrition and instructions. "+
			"Fill meta, shopping, budget, prep, pantry, and tips with meaningful guidance.",
		payload,
	)
}
