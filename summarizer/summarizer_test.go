package summarizer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintalk/roundtable"
)

var sampleTurns = []roundtable.Turn{
	{Segment: roundtable.SegmentModeratorIntro, Persona: roundtable.Moderator, Text: "Welcome to the panel."},
	{Segment: roundtable.SegmentBullishView, Persona: roundtable.Bullish, Text: "Equities will rally."},
	{Segment: roundtable.SegmentBearishView, Persona: roundtable.Bearish, Text: "Credit is tightening."},
	{Segment: roundtable.SegmentModeratorWrap, Persona: roundtable.Moderator, Text: "Thank you both."},
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(sampleTurns)
	assert.True(t, strings.HasPrefix(p, "Summarize this debate between a bullish and a bearish economist in 5 bullet points."))
	assert.Contains(t, p, "Selin: Welcome to the panel.\nBullish Investor: Equities will rally.\nBearish Economist: Credit is tightening.\nSelin: Thank you both.")
}

func TestOpenAISummarize(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o-mini",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "\n- point one\n- point two\n\nConclusion: balanced.  \n"}
			}]
		}`)
	}))
	defer srv.Close()

	s, err := NewOpenAI(Settings{APIKey: "test-key", BaseURL: srv.URL + "/v1/"})
	require.NoError(t, err)

	out, err := s.Summarize(context.Background(), sampleTurns)
	require.NoError(t, err)
	assert.Equal(t, "- point one\n- point two\n\nConclusion: balanced.", out)
	assert.Contains(t, body, "gpt-4o-mini")
	assert.Contains(t, body, "You are an expert economic summarizer.")
	assert.Contains(t, body, "Bearish Economist: Credit is tightening.")
}

func TestOpenAISummarizeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error": {"message": "boom", "type": "server_error"}}`)
	}))
	defer srv.Close()

	s, err := NewOpenAI(Settings{APIKey: "test-key", BaseURL: srv.URL + "/v1/"})
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), sampleTurns)
	assert.Error(t, err)
}

func TestGeminiSummarize(t *testing.T) {
	var path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "\n- point one\n"}, {"text": "- point two\n\nConclusion: balanced.  \n"}]},
				"finishReason": "STOP"
			}]
		}`)
	}))
	defer srv.Close()

	g, err := NewGemini(Settings{APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	out, err := g.Summarize(context.Background(), sampleTurns)
	require.NoError(t, err)
	assert.Equal(t, "- point one\n- point two\n\nConclusion: balanced.", out)
	assert.True(t, strings.HasSuffix(path, "/models/"+DefaultGeminiModel+":generateContent"), path)
	assert.Contains(t, body, "systemInstruction")
	assert.Contains(t, body, "You are an expert economic summarizer.")
	assert.Contains(t, body, "Selin: Welcome to the panel.")
	assert.Contains(t, body, "Bearish Economist: Credit is tightening.")
}

func TestGeminiSummarizeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error": {"code": 400, "message": "boom", "status": "INVALID_ARGUMENT"}}`)
	}))
	defer srv.Close()

	g, err := NewGemini(Settings{APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = g.Summarize(context.Background(), sampleTurns)
	assert.ErrorContains(t, err, "generate content")
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
		wantType any
	}{
		{"default provider", Settings{APIKey: "k"}, false, &OpenAI{}},
		{"gemini", Settings{Provider: "gemini", APIKey: "k"}, false, &Gemini{}},
		{"missing key", Settings{Provider: "openai"}, true, nil},
		{"unknown provider", Settings{Provider: "claude", APIKey: "k"}, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, s)
		})
	}
}

func TestModelDefaults(t *testing.T) {
	o, err := NewOpenAI(Settings{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, o.Model)

	o, err = NewOpenAI(Settings{APIKey: "k", Model: "gpt-4.1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1", o.Model)

	g, err := NewGemini(Settings{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultGeminiModel, g.model)
}
