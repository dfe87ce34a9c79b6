package copilot

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient calls the Google Gemini API through the official GenAI SDK.
// It is the alternative provider behind the same Provider contract as
// OpenAI; which one the resolver uses is a config choice.
type GeminiClient struct {
	apiKey string
	model  string
}

// NewGeminiClient creates a Gemini-backed provider.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{apiKey: apiKey, model: model}
}

// Name implements Provider.
func (c *GeminiClient) Name() string { return "gemini" }

// Model returns the configured model identifier.
func (c *GeminiClient) Model() string { return c.model }

// Complete implements Provider.
func (c *GeminiClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini: API key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(completionTemperature)),
		MaxOutputTokens: completionMaxTokens,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("gemini: generation failed: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: no text returned")
	}
	return text, nil
}
