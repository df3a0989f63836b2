// Package summarizer turns a finished roundtable transcript into a short
// bullet-point synthesis using a remote model.
package summarizer

import (
	"fmt"

	"fintalk/roundtable"
)

const systemPrompt = "You are an expert economic summarizer."

const summaryPrompt = "Summarize this debate between a bullish and a bearish economist in 5 bullet points. " +
	"Keep it grounded in the topic and add a balanced conclusion.\n\n%s"

// Settings 提供给具体总结实现的配置。
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// BuildPrompt renders the user prompt sent to the summarization model.
func BuildPrompt(turns []roundtable.Turn) string {
	return fmt.Sprintf(summaryPrompt, roundtable.FormatTranscript(turns))
}

// New picks the backend named by s.Provider.
func New(s Settings) (roundtable.Summarizer, error) {
	switch s.Provider {
	case "", "openai":
		return NewOpenAI(s)
	case "gemini":
		return NewGemini(s)
	default:
		return nil, fmt.Errorf("summary provider %s not supported", s.Provider)
	}
}
