package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MySQLDSN    string
	RedisURL    string
	Port        string
	CORSOrigins []string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return Config{
		MySQLDSN: getenv("MYSQL_DSN", "okonari:okonari@tcp(localhost:3306)/okonari?parseTime=true"),
		// Optional; empty disables the chat stream mirror.
		RedisURL:    os.Getenv("REDIS_URL"),
		Port:        getenv("PORT", "8080"),
		CORSOrigins: strings.Split(getenv("CORS_ORIGINS", "http://localhost:3000"), ","),
	}
}
