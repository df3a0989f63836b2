package narration

import (
	"context"
	"errors"
	"io"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultModel = "tts-1"

// Synthesizer turns text into encoded audio bytes spoken with voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Settings 提供给语音合成实现的配置。
type Settings struct {
	Model   string
	APIKey  string
	BaseURL string
}

// OpenAISpeech implements Synthesizer with the openai-go audio speech endpoint (mp3 output).
type OpenAISpeech struct {
	Model string
	Opts  []option.RequestOption
}

func NewOpenAISpeech(s Settings) (*OpenAISpeech, error) {
	if s.APIKey == "" {
		return nil, errors.New("speech api key missing")
	}
	model := s.Model
	if model == "" {
		model = DefaultModel
	}
	opts := []option.RequestOption{option.WithAPIKey(s.APIKey), option.WithMaxRetries(0)}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	return &OpenAISpeech{Model: model, Opts: opts}, nil
}

func (o *OpenAISpeech) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(o.Model),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("speech: empty audio")
	}
	return data, nil
}
