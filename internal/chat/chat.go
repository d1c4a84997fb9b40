// Package chat proxies dashboard chat messages to an AI provider. The
// service selector picks Gemini or OpenAI; every provider failure comes back
// as an error, never a panic or unhandled fault.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/mightywomble/linksdashboard/internal/store"
)

const (
	// GeminiService is the selector value routed to Gemini; anything else
	// goes to OpenAI.
	GeminiService = "gemini-2.5-flash"

	openAIModel  = "gpt-4o"
	systemPrompt = "You are a helpful assistant for a dashboard application. Help users with technical questions, server management, troubleshooting, and general IT support."
)

// ErrMissingAPIKey indicates the selected provider has no key configured.
var ErrMissingAPIKey = errors.New("API key not configured")

// Proxy forwards chat messages to the configured providers.
type Proxy struct {
	client *http.Client

	// openAIBaseURL is overridable in tests.
	openAIBaseURL string
}

// New creates a chat proxy with a bounded request timeout.
func New(timeout time.Duration) *Proxy {
	return &Proxy{
		client:        &http.Client{Timeout: timeout},
		openAIBaseURL: "https://api.openai.com/v1",
	}
}

// Ask forwards message to the provider selected by service and returns the
// plain-text reply.
func (p *Proxy) Ask(ctx context.Context, message, service string, keys store.APIKeys) (string, error) {
	if service == GeminiService {
		return p.askGemini(ctx, message, keys.Gemini)
	}
	return p.askOpenAI(ctx, message, keys.OpenAI)
}

func (p *Proxy) askGemini(ctx context.Context, message, apiKey string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("Gemini %w", ErrMissingAPIKey)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return "", fmt.Errorf("creating Gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, GeminiService, genai.Text(message), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}
	return resp.Text(), nil
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *Proxy) askOpenAI(ctx context.Context, message, apiKey string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("OpenAI %w", ErrMissingAPIKey)
	}

	payload, err := json.Marshal(openAIRequest{
		Model: openAIModel,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.openAIBaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errMsg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(errMsg))
	}

	var parsed openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return parsed.Choices[0].Message.Content, nil
}
