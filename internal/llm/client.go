// Package llm is a minimal client for an OpenAI-compatible chat-completion
// endpoint. One request per invocation, no retry loop; a failed call is
// surfaced directly to the user.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"archassist/internal/config"
	"archassist/internal/types"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Fixed sampling parameters for the command-translation request.
const (
	maxCompletionTokens = 150
	temperature         = 1.0
)

// Config customizes a Client. Zero fields fall back to defaults.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Client talks to the chat-completion service.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	log        *zap.Logger
}

// New builds a Client from cfg.
func New(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{},
		log:        log,
	}
}

// Available reports whether the client holds a credential. Callers check
// this before routing a prompt down the fallback path.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string    `json:"model"`
	Messages            []message `json:"messages"`
	MaxCompletionTokens int       `json:"max_completion_tokens,omitempty"`
	Temperature         float64   `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one chat-completion request and returns the raw assistant
// content. Every failure mode maps to KindCommandFailed.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", types.CommandFailed("%s not set", config.EnvAPIKey)
	}

	reqBody := chatRequest{
		Model:               c.model,
		MaxCompletionTokens: maxCompletionTokens,
		Temperature:         temperature,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", types.CommandFailed("llm request encode (%v)", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", types.CommandFailed("llm request build (%v)", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("llm call", zap.String("model", c.model), zap.Int("prompt_len", len(userPrompt)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", types.CommandFailed("llm call (%v)", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", types.CommandFailed("llm read (%v)", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", types.CommandFailed("llm call (status %d: %s)", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", types.CommandFailed("llm decode (%v)", err)
	}
	if parsed.Error != nil {
		return "", types.CommandFailed("llm error (%s)", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", types.CommandFailed("LLM returned no choices")
	}
	content := parsed.Choices[0].Message.Content
	if content == nil {
		return "", types.CommandFailed("LLM returned no content")
	}
	trimmed := strings.TrimSpace(*content)
	if trimmed == "" {
		return "", types.CommandFailed("LLM returned only whitespace")
	}

	c.log.Debug("llm response", zap.Int("content_len", len(trimmed)))
	return trimmed, nil
}
