package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port        string
	APIKey      string
	DatabaseURL string
	OpenAIKey   string
	// Languages is the preference order used when a video is added
	// without an explicit caption language.
	Languages []string
}

// Load reads service configuration from the environment.
func Load() (*Config, error) {
	apiKey := os.Getenv("SERVICE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SERVICE_API_KEY environment variable must be set")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable must be set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	languages := []string{"en"}
	if val := os.Getenv("CAPTION_LANGUAGES"); val != "" {
		languages = nil
		for _, lang := range strings.Split(val, ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				languages = append(languages, lang)
			}
		}
	}

	return &Config{
		Port:        port,
		APIKey:      apiKey,
		DatabaseURL: dbURL,
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		Languages:   languages,
	}, nil
}
