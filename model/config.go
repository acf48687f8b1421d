package model

// Config mirrors the top-level structure of config.yaml.
type Config struct {
	Telegram   Telegram   `mapstructure:"telegram"`
	Server     Server     `mapstructure:"server"`
	Database   Database   `mapstructure:"database"`
	Submission Submission `mapstructure:"submission"`
	Log        Log        `mapstructure:"log"`
}

// Telegram corresponds to the "telegram" section.
type Telegram struct {
	Token       string `mapstructure:"token"`
	BotUsername string `mapstructure:"bot_username"`
	WebhookURL  string `mapstructure:"webhook_url"`
}

// Server corresponds to the "server" section.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Database corresponds to the "database" section.
type Database struct {
	Path string `mapstructure:"path"`
}

// Submission corresponds to the "submission" section.
type Submission struct {
	DefaultAuthor     string `mapstructure:"default_author"`
	SessionTTLMinutes int    `mapstructure:"session_ttl_minutes"`
}

// Log corresponds to the "log" section.
type Log struct {
	Level string `mapstructure:"level"`
}
