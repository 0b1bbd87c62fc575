package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"propfinder/internal/config"
	"propfinder/internal/model"
	"propfinder/internal/utils"
)

// defaultSystemPrompt is used when no prompt file is configured. It asks the
// model for a JSON object with optional "filters" and "text" fields.
const defaultSystemPrompt = `You are a real estate search assistant. Decide whether the user's message is a property search or general conversation, and respond ONLY with a JSON object containing up to two optional fields:
- "filters": an object with any of: location (string), min_price (number), max_price (number), min_bedrooms (integer), min_bathrooms (integer), amenities (array of strings). Include it only when the message expresses search criteria, and omit every field that is not mentioned.
- "text": a short conversational reply string. Include it when the user is chatting or needs guidance.

Examples:
Message: "3 bedroom under 500000 in Austin with a pool"
Response: {"filters": {"location": "Austin", "min_bedrooms": 3, "max_price": 500000, "amenities": ["pool"]}}

Message: "hello"
Response: {"text": "Hi! Tell me which city, budget and bedroom count you're looking for and I'll find matching homes."}`

// AIClient is the interface of the delegated language-model tier.
type AIClient interface {
	// ParseIntent parses user text into filters and/or a conversational reply.
	ParseIntent(ctx context.Context, text string) (*AIIntentResponse, error)

	// IsEnabled returns whether the client is configured and ready
	IsEnabled() bool
}

// AIIntentResponse is the structured JSON object expected from the model.
type AIIntentResponse struct {
	Filters *model.FilterResult `json:"filters,omitempty"`
	Text    string              `json:"text,omitempty"`
}

// OpenAIClient handles OpenAI-compatible API interactions
type OpenAIClient struct {
	config       *config.OpenAIConfig
	httpClient   *http.Client
	systemPrompt string
}

var _ AIClient = (*OpenAIClient)(nil)

// NewOpenAIClient creates a new OpenAI-compatible client. The system prompt is
// read from the configured prompt file when present, otherwise a built-in
// default is used.
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	prompt := defaultSystemPrompt
	if cfg.PromptPath != "" {
		if data, err := os.ReadFile(cfg.PromptPath); err == nil {
			prompt = string(bytes.TrimSpace(data))
		} else {
			log.Printf("Warning: could not read prompt file %s, using built-in prompt: %v", cfg.PromptPath, err)
		}
	}

	return &OpenAIClient{
		config:       cfg,
		systemPrompt: prompt,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat specifies the format of the response
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("OpenAI API is not enabled (missing API key)")
	}

	if req.Model == "" {
		req.Model = c.config.ChatModel
	}
	if req.Temperature == 0 && c.config.Temperature > 0 {
		req.Temperature = c.config.Temperature
	}
	if req.MaxTokens == 0 && c.config.MaxTokens > 0 {
		req.MaxTokens = c.config.MaxTokens
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// ParseIntent asks the model to convert the user's text into filters and/or a
// conversational reply.
func (c *OpenAIClient) ParseIntent(ctx context.Context, text string) (*AIIntentResponse, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("OpenAI API is not enabled")
	}

	req := ChatCompletionRequest{
		Model: c.config.ChatModel,
		Messages: []ChatMessage{
			{Role: "system", Content: c.systemPrompt},
			{Role: "user", Content: text},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	// Use robust JSON parser to handle various AI output formats
	var result AIIntentResponse
	content := resp.Choices[0].Message.Content
	if err := utils.ParseAIJSON(content, &result); err != nil {
		log.Printf("Failed to parse AI response, content: %s", content)
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	return &result, nil
}
