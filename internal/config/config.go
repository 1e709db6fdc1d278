package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort        string  `mapstructure:"SERVER_PORT"`
	RedisAddr         string  `mapstructure:"REDIS_ADDR"`
	RedisPassword     string  `mapstructure:"REDIS_PASSWORD"`
	RoutingAPIURL     string  `mapstructure:"ROUTING_API_URL"`
	RoutingTimeoutSec int     `mapstructure:"ROUTING_TIMEOUT_SECONDS"`
	ClickToleranceM   float64 `mapstructure:"CLICK_TOLERANCE_M"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("ROUTING_API_URL", "http://localhost:8000/api/v1")
	viper.SetDefault("ROUTING_TIMEOUT_SECONDS", 60)
	viper.SetDefault("CLICK_TOLERANCE_M", 50.0)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
