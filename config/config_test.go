package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes sure overrides from the developer's shell do not leak into tests.
func clearEnv(t *testing.T) {
	for _, k := range []string{"API_KEY", "SUMMARY_MODEL", "SUMMARY_PROVIDER", "LLM_BASE_URL", "LLM_MODEL", "OUTPUT_DIR", "LOG_LEVEL", "NARRATION_CONCURRENCY"} {
		t.Setenv(k, "")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  Config{Summary: SummaryConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "missing api key",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "unknown llm provider",
			config: Config{
				LLM:     LLMConfig{Provider: "llama-cpp-python"},
				Summary: SummaryConfig{APIKey: "sk-test"},
			},
			wantErr: true,
		},
		{
			name: "unknown summary provider",
			config: Config{
				Summary: SummaryConfig{APIKey: "sk-test", Provider: "claude"},
			},
			wantErr: true,
		},
		{
			name: "negative temperature",
			config: Config{
				LLM:     LLMConfig{Temperature: float32Ptr(-0.1)},
				Summary: SummaryConfig{APIKey: "sk-test"},
			},
			wantErr: true,
		},
		{
			name: "top_p above one",
			config: Config{
				LLM:     LLMConfig{TopP: float32Ptr(1.5)},
				Summary: SummaryConfig{APIKey: "sk-test"},
			},
			wantErr: true,
		},
		{
			name: "gemini summary",
			config: Config{
				Summary: SummaryConfig{APIKey: "g-key", Provider: "gemini"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Summary: SummaryConfig{APIKey: "sk-test"}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "local", cfg.LLM.Provider)
	assert.Equal(t, "http://localhost:1234/v1", cfg.LLM.BaseURL)
	assert.Equal(t, 480, cfg.LLM.MaxTokens)
	require.NotNil(t, cfg.LLM.Temperature)
	assert.InDelta(t, 0.7, *cfg.LLM.Temperature, 1e-6)
	require.NotNil(t, cfg.LLM.TopP)
	assert.InDelta(t, 0.9, *cfg.LLM.TopP, 1e-6)
	assert.Equal(t, "openai", cfg.Summary.Provider)
	assert.Equal(t, "", cfg.Summary.Model, "model default is left to the summarizer backend")
	assert.Equal(t, "tts-1", cfg.Narration.Model)
	assert.Equal(t, "sk-test", cfg.Narration.APIKey)
	assert.Equal(t, 1, cfg.Narration.Concurrency)
	assert.Equal(t, []string{"pdf"}, cfg.Report.Formats)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
llm:
  base_url: "http://127.0.0.1:8081/v1"
  model: "finance-8b"
  max_tokens: 512
  temperature: 0

summary:
  api_key: "sk-from-file"
  model: "gpt-4o"

narration:
  voices:
    bullish: "echo"
  concurrency: 2

report:
  formats: ["pdf", "docx"]
  font_file: "/fonts/DejaVuSans.ttf"

output_dir: "out"

logging:
  level: "debug"
  format: "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8081/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "finance-8b", cfg.LLM.Model)
	assert.Equal(t, 512, cfg.LLM.MaxTokens)
	require.NotNil(t, cfg.LLM.Temperature)
	assert.Zero(t, *cfg.LLM.Temperature, "explicit zero must survive defaults")
	assert.InDelta(t, 0.9, *cfg.LLM.TopP, 1e-6)
	assert.Equal(t, "sk-from-file", cfg.Summary.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Summary.Model)
	assert.Equal(t, "echo", cfg.Narration.Voices["bullish"])
	assert.Equal(t, 2, cfg.Narration.Concurrency)
	assert.Equal(t, []string{"pdf", "docx"}, cfg.Report.Formats)
	assert.Equal(t, "/fonts/DejaVuSans.ttf", cfg.Report.FontFile)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "sk-env")
	t.Setenv("SUMMARY_MODEL", "gpt-4.1-mini")
	t.Setenv("OUTPUT_DIR", "reports")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.Summary.APIKey)
	assert.Equal(t, "gpt-4.1-mini", cfg.Summary.Model)
	assert.Equal(t, "reports", cfg.OutputDir)
}

func TestLoadInvalidNarrationConcurrency(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "sk-env")
	t.Setenv("NARRATION_CONCURRENCY", "four")

	_, err := Load("")
	assert.ErrorContains(t, err, "NARRATION_CONCURRENCY")

	t.Setenv("NARRATION_CONCURRENCY", "3")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Narration.Concurrency)
}

func TestLoadMissingAPIKey(t *testing.T) {
	clearEnv(t)
	_, err := Load("")
	assert.ErrorContains(t, err, "API_KEY")
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	// godotenv never overrides variables that already exist, so use a fresh key.
	const key = "FINTALK_DOTENV_PROBE"
	t.Cleanup(func() { os.Unsetenv(key) })
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=sk-dotenv\n"), 0644))
	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "sk-dotenv", os.Getenv(key))
}
