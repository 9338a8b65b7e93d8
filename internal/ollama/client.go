// Package ollama wraps the Ollama API client for local-LLM text generation.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	// DefaultModel is a small general-purpose model suitable for one-line
	// rephrasings.
	DefaultModel = "llama3.2"
	// DefaultURL is the default Ollama API endpoint.
	DefaultURL = "http://localhost:11434"
)

// Client wraps the Ollama API client.
type Client struct {
	client *api.Client
	model  string
}

// NewClient creates a new Ollama client against the given endpoint.
func NewClient(rawURL, model string) (*Client, error) {
	if rawURL == "" {
		rawURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url: %w", err)
	}

	return &Client{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
	}, nil
}

// IsAvailable checks if Ollama is running and accessible.
func IsAvailable(rawURL string) bool {
	if rawURL == "" {
		rawURL = DefaultURL
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(rawURL)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Generate produces a completion for the given prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	stream := false
	req := &api.GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: &stream,
	}

	var sb strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generating completion: %w", err)
	}

	return strings.TrimSpace(sb.String()), nil
}
