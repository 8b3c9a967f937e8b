package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the optional messaging settings; everything else is
// read ad hoc via GetEnv.
type Config struct {
	RabbitMQURL   string
	OrderExchange string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func Load() *Config {
	return &Config{
		RabbitMQURL:   GetEnv("RABBITMQ_URL", ""),
		OrderExchange: GetEnv("ORDER_EXCHANGE", "order_events"),
	}
}
