package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	maxTokens        = 800
	temperature      = 0.7
	rawBodyLimit     = 200
	maxResponseBytes = 4 << 20
)

// Completer turns a conversation into the assistant's reply
type Completer interface {
	Complete(ctx context.Context, settings Settings, messages []ChatMessage) (string, error)
}

// AzureClient calls an Azure OpenAI chat completions deployment
type AzureClient struct {
	HTTPClient *http.Client
	APIVersion string
}

// NewAzureClient creates a client with the given request timeout
func NewAzureClient(apiVersion string, timeout time.Duration) *AzureClient {
	return &AzureClient{
		HTTPClient: &http.Client{Timeout: timeout},
		APIVersion: apiVersion,
	}
}

type completionRequest struct {
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete posts the conversation and returns choices[0].message.content
func (c *AzureClient) Complete(ctx context.Context, settings Settings, messages []ChatMessage) (string, error) {
	body, err := json.Marshal(completionRequest{
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := settings.CompletionURL(c.APIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", settings.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	LogDebug("POST %s (%d messages)", url, len(messages))
	resp, err := client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newServerError(resp.StatusCode, resp.Header.Get("Content-Type"), data)
	}

	var parsed completionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &MalformedResponseError{Reason: err.Error()}
	}
	if len(parsed.Choices) == 0 {
		return "", &MalformedResponseError{Reason: "no choices in response"}
	}
	if parsed.Choices[0].Message.Content == nil {
		return "", &MalformedResponseError{Reason: "choices[0].message.content missing"}
	}
	return *parsed.Choices[0].Message.Content, nil
}

func newServerError(status int, contentType string, body []byte) *ServerError {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return &ServerError{Status: status, Message: parsed.Error.Message, Structured: true}
		}
		if strings.Contains(contentType, "application/json") {
			return &ServerError{Status: status, Message: strings.TrimSpace(string(body)), Structured: true}
		}
	}
	return &ServerError{Status: status, Message: truncate(string(body), rawBodyLimit)}
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
