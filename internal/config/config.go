package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig               `json:"basic_config"`
	Databases   map[string]DatabaseConfig `json:"databases"`
	Redis       RedisConfig               `json:"redis"`
	OpenAI      OpenAIConfig              `json:"openai"`
	Uploads     UploadsConfig             `json:"uploads"`
}

type BasicConfig struct {
	ServerAddress string `json:"server_address"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	DBName   string `json:"db_name"`
	Params   string `json:"params"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// OpenAIConfig configures the upstream chat-completion API. The API key
// comes from the OPENAI_API_KEY environment variable when set; the file
// value is a fallback for local setups.
type OpenAIConfig struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

type UploadsConfig struct {
	BaseDir string `json:"base_dir"`
	// PublicBaseURL is the URL prefix under which stored attachments are
	// served, e.g. "http://localhost:8090/files".
	PublicBaseURL string `json:"public_base_url"`
	// RetentionHours prunes attachments older than this; 0 disables pruning.
	RetentionHours int `json:"retention_hours"`
}

// Load reads configuration from the provided path (defaults to config.json).
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}
	if cfg.Uploads.BaseDir == "" {
		cfg.Uploads.BaseDir = "./data/uploads"
	}
	if !filepath.IsAbs(cfg.Uploads.BaseDir) {
		cfg.Uploads.BaseDir = filepath.Join(filepath.Dir(absPath), cfg.Uploads.BaseDir)
	}

	return &cfg, nil
}
