package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient completes chats against Google's Gemini API.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a GeminiClient with the given API key.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Complete sends the ordered messages and returns the generated text. System
// messages become the system instruction; the rest form the user contents.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxTokens),
	}

	var contents []*genai.Content
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			cfg.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}

	result, err := c.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}
