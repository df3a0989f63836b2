package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"fintalk/roundtable"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini summarizes through the Gemini API.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
}

func NewGemini(s Settings) (*Gemini, error) {
	if s.APIKey == "" {
		return nil, errors.New("gemini api key missing; set API_KEY")
	}
	model := s.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{apiKey: s.APIKey, model: model, baseURL: s.BaseURL}, nil
}

func (g *Gemini) Summarize(ctx context.Context, turns []roundtable.Turn) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(turns)), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.New("empty response from Gemini")
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
