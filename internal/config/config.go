// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//DATABASE_URL, TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID env vars override
	//these in Load
	DatabaseURL    string `yaml:"database_url"`
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`

	//Browser
	Headless        bool   `yaml:"headless"`
	CookiesPath     string `yaml:"cookies_path"`
	ScreenshotsPath string `yaml:"screenshots_path"`

	//Crawl limits
	MaxItemsPerURL    int     `yaml:"max_items_per_url"`
	TotalItemsLimit   int     `yaml:"total_items_limit"`
	DetailConcurrency int     `yaml:"detail_concurrency"`
	RequestTimeoutMs  int     `yaml:"request_timeout_ms"`
	RetryAttempts     int     `yaml:"retry_attempts"`
	HostRatePerSec    float64 `yaml:"host_rate_per_sec"`

	//Scheduling
	CronSchedule string `yaml:"cron_schedule"`
	Port         string `yaml:"port"` //PORT env var overrides

	Debug bool `yaml:"debug"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{Headless: true}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		}
		//no config file is fine, envs + defaults cover everything
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	//Override with env vars
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.CookiesPath == "" {
		cfg.CookiesPath = ".cookies"
	}
	if cfg.ScreenshotsPath == "" {
		cfg.ScreenshotsPath = "logs/screenshots"
	}
	if cfg.MaxItemsPerURL <= 0 {
		cfg.MaxItemsPerURL = 25
	}
	if cfg.TotalItemsLimit <= 0 {
		cfg.TotalItemsLimit = 100
	}
	if cfg.DetailConcurrency <= 0 {
		cfg.DetailConcurrency = 3
	}
	if cfg.RequestTimeoutMs <= 0 {
		cfg.RequestTimeoutMs = 30000
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 2
	}
	if cfg.HostRatePerSec <= 0 {
		cfg.HostRatePerSec = 0.5
	}
	if cfg.CronSchedule == "" {
		cfg.CronSchedule = "0 */6 * * *"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
}
