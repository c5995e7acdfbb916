package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type SlotConfig struct {
	Env string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	SlotDB       `yaml:"slot_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	Autorenew    `yaml:"autorenew"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type SlotDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"coupon-events"`
}

type Autorenew struct {
	Enabled       bool          `yaml:"enabled"`
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"1h"`
	// RenewAhead is how far before the end date the sweep picks a slot up.
	RenewAhead time.Duration `yaml:"renew_ahead" env-default:"24h"`
}

func MustLoad() *SlotConfig {

	// Processing env config variable and file
	configPath := os.Getenv("SLOT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("SLOT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg SlotConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
