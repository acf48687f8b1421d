package config

import (
	"github.com/spf13/viper"

	"github.com/SteveHaveIt/Blog/model"
)

// Cfg is the loaded process configuration.
var Cfg model.Config

// LoadConfig reads config.yaml from the working directory, applying
// environment variable overrides and defaults for optional sections.
func LoadConfig() (err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("database.path", "./data/cms.db")
	viper.SetDefault("submission.default_author", "Steve Have It")
	viper.SetDefault("submission.session_ttl_minutes", 60)
	viper.SetDefault("log.level", "info")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&Cfg)
	return
}
