package narration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAISpeechSynthesize(t *testing.T) {
	var path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3-fake-mp3"))
	}))
	defer srv.Close()

	s, err := NewOpenAISpeech(Settings{APIKey: "k", BaseURL: srv.URL + "/v1/"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, s.Model)

	audio, err := s.Synthesize(context.Background(), "Welcome to the panel.", "nova")
	require.NoError(t, err)
	assert.Equal(t, "ID3-fake-mp3", string(audio))
	assert.True(t, strings.HasSuffix(path, "/audio/speech"), path)
	assert.Contains(t, body, "Welcome to the panel.")
	assert.Contains(t, body, "nova")
	assert.Contains(t, body, "mp3")
}

func TestOpenAISpeechError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`)
	}))
	defer srv.Close()

	s, err := NewOpenAISpeech(Settings{APIKey: "k", BaseURL: srv.URL + "/v1/"})
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "hello", "nova")
	assert.Error(t, err)
}

func TestNewOpenAISpeechRequiresKey(t *testing.T) {
	_, err := NewOpenAISpeech(Settings{})
	assert.Error(t, err)
}
