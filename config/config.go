package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM        LLMConfig       `yaml:"llm"`
	Summary    SummaryConfig   `yaml:"summary"`
	Narration  NarrationConfig `yaml:"narration"`
	Report     ReportConfig    `yaml:"report"`
	OutputDir  string          `yaml:"output_dir"`
	ServerAddr string          `yaml:"server_addr"`
	Inbox      InboxConfig     `yaml:"inbox"`
	Logging    LoggingConfig   `yaml:"logging"`
}

// LLMConfig 对话模型（本地 OpenAI 兼容服务）配置。
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature *float32 `yaml:"temperature"`
	TopP        *float32 `yaml:"top_p"`
}

type SummaryConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

type NarrationConfig struct {
	Disabled    bool              `yaml:"disabled"`
	Model       string            `yaml:"model"`
	APIKey      string            `yaml:"api_key"`
	BaseURL     string            `yaml:"base_url"`
	Voices      map[string]string `yaml:"voices"`
	Concurrency int               `yaml:"concurrency"`
}

type ReportConfig struct {
	Formats []string `yaml:"formats"`
	// FontFile 是 PDF 使用的 UTF-8 TTF 字体；为空时只能输出 cp1252 字符。
	FontFile string `yaml:"font_file"`
}

type InboxConfig struct {
	Dir string `yaml:"dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoadEnvFile loads KEY=VALUE pairs from path into the environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads the yaml file at path (optional when empty), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Summary.APIKey = getEnv("API_KEY", c.Summary.APIKey)
	c.Summary.Model = getEnv("SUMMARY_MODEL", c.Summary.Model)
	c.Summary.Provider = getEnv("SUMMARY_PROVIDER", c.Summary.Provider)
	c.LLM.BaseURL = getEnv("LLM_BASE_URL", c.LLM.BaseURL)
	c.LLM.Model = getEnv("LLM_MODEL", c.LLM.Model)
	c.OutputDir = getEnv("OUTPUT_DIR", c.OutputDir)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	n, err := getEnvInt("NARRATION_CONCURRENCY", c.Narration.Concurrency)
	if err != nil {
		return err
	}
	c.Narration.Concurrency = n
	return nil
}

// Validate checks required settings and fills defaults.
func (c *Config) Validate() error {
	if c.Summary.APIKey == "" {
		return fmt.Errorf("API_KEY not found; set it in .env or the environment")
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = "local"
	}
	switch c.LLM.Provider {
	case "local", "mock":
	default:
		return fmt.Errorf("llm.provider %s not supported", c.LLM.Provider)
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "http://localhost:1234/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "llama-3-8b-instruct-finance-rag"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 480
	}
	// 未设置时用默认值；显式写 0 表示确定性采样。
	if c.LLM.Temperature == nil {
		c.LLM.Temperature = float32Ptr(0.7)
	}
	if *c.LLM.Temperature < 0 {
		return fmt.Errorf("llm.temperature must not be negative")
	}
	if c.LLM.TopP == nil {
		c.LLM.TopP = float32Ptr(0.9)
	}
	if *c.LLM.TopP < 0 || *c.LLM.TopP > 1 {
		return fmt.Errorf("llm.top_p must be between 0 and 1")
	}

	if c.Summary.Provider == "" {
		c.Summary.Provider = "openai"
	}
	if c.Summary.Provider != "openai" && c.Summary.Provider != "gemini" {
		return fmt.Errorf("summary.provider %s not supported", c.Summary.Provider)
	}

	if c.Narration.Model == "" {
		c.Narration.Model = "tts-1"
	}
	if c.Narration.APIKey == "" {
		c.Narration.APIKey = c.Summary.APIKey
	}
	if c.Narration.Concurrency <= 0 {
		c.Narration.Concurrency = 1
	}

	if len(c.Report.Formats) == 0 {
		c.Report.Formats = []string{"pdf"}
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if c.Inbox.Dir == "" {
		c.Inbox.Dir = "inbox"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return i, nil
}

func float32Ptr(v float32) *float32 {
	return &v
}
