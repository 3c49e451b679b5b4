// Package llm provides a chat-completion client for OpenAI-compatible endpoints.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// maxResponseSize limits the response body to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "system", "user", or "assistant"
	Content string `json:"content"` // Message content
}

// Request defines a chat completion request.
type Request struct {
	// Model is the model identifier sent to the endpoint.
	Model string

	// Messages is the chat history to send.
	Messages []Message

	// Temperature controls randomness.
	Temperature float64

	// JSONObject constrains the response to a single JSON object
	// via the endpoint's response_format parameter.
	JSONObject bool

	// MaxTokens limits response length. 0 uses the endpoint default.
	MaxTokens int
}

// Client sends chat completion requests to an OpenAI-compatible endpoint.
//
// The API credential is passed per call and is never stored on the client,
// never logged, and never written anywhere.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient creates a client for the given base URL
// (e.g. "https://api.openai.com/v1").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 180 * time.Second, // Allow time for long completions
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Complete sends a single chat completion request and returns the first
// choice's message content. credential authenticates the call as a bearer
// token; it is used for this one request only.
func (c *Client) Complete(ctx context.Context, credential string, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("at least one message is required")
	}

	body := chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONObject {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	c.logger.Debug("sending completion request",
		zap.String("model", req.Model),
		zap.Int("messages", len(req.Messages)),
		zap.Bool("json_object", req.JSONObject))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+credential)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &CapabilityError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return "", &CapabilityError{Message: fmt.Sprintf("read response: %v", err)}
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", newStatusError(httpResp.StatusCode, respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &CapabilityError{Message: fmt.Sprintf("malformed response body: %v", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &CapabilityError{Message: "response contained no choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}
