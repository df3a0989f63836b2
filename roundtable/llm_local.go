package roundtable

import (
	"context"
	"errors"
	"math"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	defaultMaxTokens   = 480
	defaultTemperature = 0.7
	defaultTopP        = 0.9
)

// LocalLLM talks to an OpenAI-compatible local server (llama.cpp, LM Studio, Ollama).
// Every call is a fresh, stateless chat completion.
type LocalLLM struct {
	client      *goopenai.Client
	model       string
	maxTokens   int
	temperature float32
	topP        float32
}

func NewLocalLLMFromConfig(cfg *LLMSettings) (*LocalLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("llm base_url is required for the local backend")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		// 本地服务一般不校验 key，但 SDK 需要一个非空值。
		apiKey = "local"
	}
	clientConfig := goopenai.DefaultConfig(apiKey)
	clientConfig.BaseURL = cfg.BaseURL

	l := &LocalLLM{
		client:      goopenai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: defaultTemperature,
		topP:        defaultTopP,
	}
	if l.maxTokens <= 0 {
		l.maxTokens = defaultMaxTokens
	}
	if cfg.Temperature != nil {
		l.temperature = *cfg.Temperature
	}
	if cfg.TopP != nil {
		l.topP = *cfg.TopP
	}
	return l, nil
}

func (l *LocalLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	resp, err := l.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: l.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt.User},
		},
		MaxTokens:   l.maxTokens,
		Temperature: sampling(l.temperature),
		TopP:        sampling(l.topP),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("local llm: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// sampling keeps an explicit zero on the wire: go-openai drops 0 via omitempty.
func sampling(v float32) float32 {
	if v == 0 {
		return math.SmallestNonzeroFloat32
	}
	return v
}
