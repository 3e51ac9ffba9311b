package assistant

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Client generates a raw model response for a prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrUnavailable is returned when no model backend is configured.
var ErrUnavailable = errors.New("assistant is not configured")

// unavailableClient lets the server run without a GenAI key; chat requests
// fail cleanly instead of at startup.
type unavailableClient struct{}

func NewUnavailableClient() Client {
	return unavailableClient{}
}

func (unavailableClient) Generate(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

type genaiClient struct {
	client *genai.Client
	model  string
}

func NewGenAIClient(ctx context.Context, apiKey, model string) (Client, error) {
	if apiKey == "" {
		return nil, errors.New("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &genaiClient{client: client, model: model}, nil
}

func (c *genaiClient) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("no text returned")
	}

	return text, nil
}
