package config

import (
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
}

var CorsConfig = cors.Config{
	AllowOrigins:     []string{"http://localhost:8080"},
	AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
	AllowHeaders:     []string{"*"},
	ExposeHeaders:    []string{"X-Request-ID"},
	AllowCredentials: true,
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Port:          envInt("PORT", 10010),
		DatabaseDSN:   env("DATABASE_DSN", "user=duochat password=duochat dbname=duochat sslmode=disable"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPassword: env("REDIS_PASSWORD", ""),
		JWTSecret:     env("JWT_SECRET", "dev-secret-change-me"),
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
