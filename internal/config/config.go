package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	DBDSN          string        `mapstructure:"DB_DSN"`
	GatewayURL     string        `mapstructure:"GATEWAY_URL"`
	GatewayKey     string        `mapstructure:"GATEWAY_KEY"`
	GatewayTimeout time.Duration `mapstructure:"GATEWAY_TIMEOUT"`
	LogFile        string        `mapstructure:"LOG_FILE"`
}

func Load() Config {
	v := viper.New()
	v.SetDefault("PORT", "8081")
	v.SetDefault("DB_DSN", "pocketshop.db") // sqlite file in project root
	v.SetDefault("GATEWAY_URL", "http://localhost:9090")
	v.SetDefault("GATEWAY_KEY", "")
	v.SetDefault("GATEWAY_TIMEOUT", 10*time.Second)
	v.SetDefault("LOG_FILE", "./pocketshop.log")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("[config] unmarshal: %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s GATEWAY_URL=%s GATEWAY_TIMEOUT=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.GatewayURL, cfg.GatewayTimeout, cfg.LogFile)
	return cfg
}
