package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/vbonduro/marineit/internal/domain"
)

type Config struct {
	ListenAddr        string
	StorageBackend    string
	DBPath            string
	DataDir           string
	OperatorName      string
	SummaryBackend    string
	ClaudeAPIKey      string
	ClaudeModel       string
	OllamaHost        string
	OllamaModel       string
	ImageMaxDimension int
	LogLevel          string
	LogFile           string
}

// Load reads the configuration from the environment. Values in a .env file in
// the working directory are used for variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("STORAGE_BACKEND", "sqlite")
	v.SetDefault("DB_PATH", "/data/marineit.db")
	v.SetDefault("DATA_DIR", "/data/blobs")
	v.SetDefault("OPERATOR_NAME", domain.DefaultOperator)
	v.SetDefault("SUMMARY_BACKEND", "none")
	v.SetDefault("CLAUDE_API_KEY", "")
	v.SetDefault("CLAUDE_MODEL", "claude-sonnet-4-5")
	v.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	v.SetDefault("OLLAMA_MODEL", "llama3.2")
	v.SetDefault("IMAGE_MAX_DIMENSION", 1600)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.AutomaticEnv()

	return &Config{
		ListenAddr:        v.GetString("LISTEN_ADDR"),
		StorageBackend:    v.GetString("STORAGE_BACKEND"),
		DBPath:            v.GetString("DB_PATH"),
		DataDir:           v.GetString("DATA_DIR"),
		OperatorName:      v.GetString("OPERATOR_NAME"),
		SummaryBackend:    v.GetString("SUMMARY_BACKEND"),
		ClaudeAPIKey:      v.GetString("CLAUDE_API_KEY"),
		ClaudeModel:       v.GetString("CLAUDE_MODEL"),
		OllamaHost:        v.GetString("OLLAMA_HOST"),
		OllamaModel:       v.GetString("OLLAMA_MODEL"),
		ImageMaxDimension: v.GetInt("IMAGE_MAX_DIMENSION"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFile:           v.GetString("LOG_FILE"),
	}
}
