package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiCaller is the production Caller backed by Google Gemini. Clients are
// created lazily per API key and reused; creating a genai client performs no
// network I/O.
type GeminiCaller struct {
	mu      sync.Mutex
	clients map[string]*genai.Client
}

// NewGeminiCaller returns an empty caller; clients are built on first use.
func NewGeminiCaller() *GeminiCaller {
	return &GeminiCaller{clients: make(map[string]*genai.Client)}
}

// Call issues a single generation request with the given credential and model.
func (g *GeminiCaller) Call(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := g.clientFor(ctx, apiKey)
	if err != nil {
		return "", err
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(0.2) // Low temperature for consistent output

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	return textFromResponse(resp)
}

// Close releases every cached client.
func (g *GeminiCaller) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var firstErr error
	for key, client := range g.clients {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(g.clients, key)
	}
	return firstErr
}

func (g *GeminiCaller) clientFor(ctx context.Context, apiKey string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if client, ok := g.clients[apiKey]; ok {
		return client, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.clients[apiKey] = client
	return client, nil
}

// textFromResponse joins the text parts of the first candidate.
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", nil
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	return strings.Join(parts, ""), nil
}
