package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type PasswordResetConfig struct {
	TokenTTLHours      int `yaml:"token_ttl_hours"`       // default 1
	MaxAttemptsPerHour int `yaml:"max_attempts_per_hour"` // default 3
	RateWindowMinutes  int `yaml:"rate_window_minutes"`   // default 60
	TokenSweepHour     int `yaml:"token_sweep_hour"`      // hour of day for the daily token purge, 0 means the 02:00 default
}

type TelegramConfig struct {
	BotToken  string `yaml:"bot_token"`
	OpsChatID int64  `yaml:"ops_chat_id"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	PasswordReset PasswordResetConfig `yaml:"password_reset"`
	Telegram      TelegramConfig      `yaml:"telegram"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.PasswordReset.TokenTTLHours <= 0 {
		cfg.PasswordReset.TokenTTLHours = 1
	}
	if cfg.PasswordReset.MaxAttemptsPerHour <= 0 {
		cfg.PasswordReset.MaxAttemptsPerHour = 3
	}
	if cfg.PasswordReset.RateWindowMinutes <= 0 {
		cfg.PasswordReset.RateWindowMinutes = 60
	}
	if cfg.PasswordReset.TokenSweepHour <= 0 || cfg.PasswordReset.TokenSweepHour > 23 {
		cfg.PasswordReset.TokenSweepHour = 2
	}
	return &cfg
}

func (c PasswordResetConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c PasswordResetConfig) RateWindow() time.Duration {
	return time.Duration(c.RateWindowMinutes) * time.Minute
}
