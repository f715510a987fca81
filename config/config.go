package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP listen port
	Port string `env:"PORT" envDefault:"5250"`

	// Path to the sqlite database file. Required.
	DatabasePath string `env:"DATABASE_PATH"`

	// Secret used to sign session tokens. Required.
	SessionSecret string `env:"SESSION_SECRET"`

	// Session token lifetime in hours
	SessionTTLHours int `env:"SESSION_TTL_HOURS" envDefault:"72"`

	// Root directory for stored objects (listing images, identity documents)
	StorageRoot string `env:"STORAGE_ROOT" envDefault:"storage"`

	// Base URL prefixed to stored-object public URLs
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:5250"`

	// Redis address for the session revocation set. Empty disables
	// revocation; sign-out then relies on token expiry alone.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Telegram notifications (optional)
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`

	// Minutes between lease expiry scans
	LeaseScanInterval int `env:"LEASE_SCAN_INTERVAL" envDefault:"60"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
