package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	InternalToken   string
	CORSAllowOrigin string
	OpenAIBaseURL   string
	OpenAIAPIKey    string
	OpenAIModel     string
}

func MustLoad() Config {
	return Config{
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		DatabaseURL:     env("DATABASE_URL", ""),
		InternalToken:   mustEnv("INTERNAL_TOKEN"),
		CORSAllowOrigin: env("CORS_ALLOW_ORIGIN", "*"),
		OpenAIBaseURL:   env("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIAPIKey:    env("OPENAI_API_KEY", ""),
		OpenAIModel:     env("OPENAI_MODEL", "gpt-4o-mini"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}
