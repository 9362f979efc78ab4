package util

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	TokenSecret string   `validate:"required,len=32"`
	Port        string   `validate:"required,number"`
	CORSOrigins []string `validate:"required,min=1"`
	LogLevel    string
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{
		TokenSecret: os.Getenv("TOKEN_SECRET"),
		Port:        os.Getenv("PORT"),
		CORSOrigins: splitOrigins(os.Getenv("CORS_ORIGINS")),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	if err := Validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return []string{"http://localhost:3000"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}

	return origins
}
