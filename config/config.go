package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-provided settings for the server and its
// backend collaborators. Everything gameplay-related is tuned from the UI,
// not from here.
type Config struct {
	Addr string `env:"ECHOES_ADDR" envDefault:"0.0.0.0:9780"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	StoryModel   string `env:"ECHOES_STORY_MODEL" envDefault:"gemini-2.5-flash"`
	ImageModel   string `env:"ECHOES_IMAGE_MODEL" envDefault:"gemini-2.5-flash-image"`

	// Speech is optional; with no key the narrator stays silent.
	ElevenLabsAPIKey string `env:"ELEVENLABS_API_KEY"`
	ElevenLabsVoice  string `env:"ECHOES_VOICE_ID" envDefault:"JBFqnCBsd6RMkjVDRZzb"`
	SpeechProvider   string `env:"ECHOES_SPEECH_PROVIDER" envDefault:"elevenlabs"`
}

// Parse loads configuration from environment variables.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
