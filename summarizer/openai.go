package summarizer

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"fintalk/roundtable"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI implements roundtable.Summarizer using the official openai-go SDK (chat completions).
type OpenAI struct {
	Model string
	Opts  []option.RequestOption
}

func NewOpenAI(s Settings) (*OpenAI, error) {
	if s.APIKey == "" {
		return nil, errors.New("openai api key missing; set API_KEY")
	}
	model := s.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	// 不做重试：失败直接返回给调用方。
	opts := []option.RequestOption{option.WithAPIKey(s.APIKey), option.WithMaxRetries(0)}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	return &OpenAI{Model: model, Opts: opts}, nil
}

func (o *OpenAI) Summarize(ctx context.Context, turns []roundtable.Turn) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(turns)),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
