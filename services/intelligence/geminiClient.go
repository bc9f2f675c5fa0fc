package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"shopdesk/models"
)

// GeminiClient implements ChatService on top of the Gemini API.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// NewGeminiClient builds the Gemini client. The API key is validated lazily
// by the first call; an empty key is rejected earlier by config validation.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiClient{model: model}, nil
}

// Complete renders the preamble plus transcript into a single prompt and
// returns the model's reply.
func (g *GeminiClient) Complete(ctx context.Context, system string, history []models.Turn) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(system, history)))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func buildPrompt(system string, history []models.Turn) string {
	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\nConversation so far:\n")
	for _, turn := range history {
		switch turn.Role {
		case models.RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("Customer: ")
		}
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Assistant:")
	return sb.String()
}
